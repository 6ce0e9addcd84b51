package main

// Browse a patient's documents from the terminal:
//   go run ./cmd/browse -base http://localhost:8080/api/v1 -patient demo -view timeline -q blut

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"healthdocs-backend/docengine/client"
	"healthdocs-backend/docengine/model"
	"healthdocs-backend/docengine/store"
	"healthdocs-backend/docengine/views"
	"healthdocs-backend/internal/shared/auth"
)

func main() {
	baseURL := flag.String("base", "http://localhost:8080/api/v1", "API base URL including prefix")
	patientID := flag.String("patient", "demo-patient", "patient ID to sign the session token for")
	viewName := flag.String("view", "doctype", "view: doctype, timeline, provider, medication, doctorNote")
	query := flag.String("q", "", "search query applied to the chosen view")
	flag.Parse()

	token, err := auth.SignJWT(auth.Claims{
		Sub: *patientID,
		Exp: time.Now().Add(time.Hour).Unix(),
		Iat: time.Now().Unix(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign token: %v\n", err)
		os.Exit(1)
	}

	c := client.New(*baseURL, client.Session{Token: token})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	records, err := c.FetchDocuments(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch failed: %v\n", err)
		os.Exit(1)
	}

	s := store.New(records...)
	if err := render(s.Snapshot(), *viewName, *query); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func render(records []model.DocumentRecord, viewName, query string) error {
	switch viewName {
	case views.ViewByDocType.String():
		printGrouped(views.SearchGroups(views.ByDocType(records), query, nil))
	case views.ViewTimeline.String():
		printList(views.SearchList(views.Timeline(records), query, nil))
	case views.ViewByProvider.String():
		printGrouped(views.SearchGroups(views.ByProvider(records), query, nil))
	case views.ViewByMedication.String():
		printGrouped(views.SearchGroupLabels(views.ByMedication(records), query))
	case views.ViewDoctorNotes.String():
		printList(views.SearchList(views.DoctorNotes(records), query, nil))
	default:
		return fmt.Errorf("unknown view %q", viewName)
	}
	return nil
}

func printGrouped(v views.GroupedView) {
	if v.NoRecords {
		fmt.Println("no documents")
		return
	}
	if len(v.Groups) == 0 {
		fmt.Println("no matches")
		return
	}
	for _, g := range v.Groups {
		fmt.Printf("%s (%d)\n", g.Label, len(g.Records))
		for _, rec := range g.Records {
			printRecord(rec)
		}
	}
}

func printList(v views.ListView) {
	if v.NoRecords {
		fmt.Println("no documents")
		return
	}
	if len(v.Records) == 0 {
		fmt.Println("no matches")
		return
	}
	for _, rec := range v.Records {
		printRecord(rec)
	}
}

func printRecord(rec model.DocumentRecord) {
	line := fmt.Sprintf("  %s  %s  %s", model.FormatDate(rec.ServiceDate), rec.Title, rec.Provider)
	if rec.Medication != "" {
		line += "  [" + rec.Medication + "]"
	}
	fmt.Println(line)
}
