package modal

import "strings"

// medicationCatalog is the pick list offered for prescriptions. Free-text
// entry stays possible; the catalog only feeds the incremental picker.
var medicationCatalog = []string{
	"Algifor 400 mg", "Algifor L 400 mg", "Amlodipin 5 mg", "Amlodipin 10 mg",
	"Amoxicillin 500 mg", "Amoxicillin 1000 mg", "Aspirin Cardio 100 mg",
	"Atorvastatin 20 mg", "Atorvastatin 40 mg", "Atorvastatin 80 mg",
	"Augmentin 625 mg", "Augmentin 1 g", "Beloc ZOK 25 mg", "Beloc ZOK 50 mg",
	"Beloc ZOK 100 mg", "Bilol 2.5 mg", "Bilol 5 mg", "Blopress 8 mg",
	"Blopress 16 mg", "Brufen 400 mg", "Brufen 600 mg", "Concor 2.5 mg",
	"Concor 5 mg", "Condrosulf 800 mg", "Crestor 10 mg", "Crestor 20 mg",
	"Dafalgan 500 mg", "Dafalgan 1 g", "Dafalgan Kindersaft", "Dafalgan Zäpfchen 250 mg",
	"Diclofenac 50 mg", "Diclofenac 75 mg", "Eliquis 2.5 mg", "Eliquis 5 mg",
	"Eltroxin 0.05 mg", "Eltroxin 0.1 mg", "Exforge 5/80 mg", "Exforge 10/160 mg",
	"Flector Pflaster", "Fluimucil 600 mg", "Glucophage 500 mg", "Glucophage 1000 mg",
	"Iberogast Tinktur", "Ibuprofen 400 mg", "Ibuprofen 600 mg", "Irfen 400 mg",
	"Irfen 600 mg", "Itinerol B6", "Jardiance 10 mg", "Jardiance 25 mg",
	"Lexotanil 3 mg", "Loperamid 2 mg", "Loratadin 10 mg", "Lyrica 75 mg",
	"Lyrica 150 mg", "Mefenacid 500 mg", "Metamizol 500 mg", "Metformin 500 mg",
	"Metformin 1000 mg", "Motilium 10 mg", "Novalgin 500 mg", "Novalgin Tropfen",
	"Olfen 50 mg", "Olfen Lactab 75 mg", "Olynth Nasenspray", "Pantozol 20 mg",
	"Pantozol 40 mg", "Paracetamol 500 mg", "Pradaxa 110 mg", "Pradaxa 150 mg",
	"Pretuval C", "Quetiapin 25 mg", "Quetiapin 100 mg", "Seresta 15 mg",
	"Sertralin 50 mg", "Sertralin 100 mg", "Simvastatin 20 mg", "Simvastatin 40 mg",
	"Solmucol 600 mg", "Sortis 20 mg", "Sortis 40 mg", "Stilnox 10 mg",
	"Symbicort 160/4.5 mcg", "Tamsulosin 0.4 mg", "Temesta 1 mg", "Temesta 2.5 mg",
	"Torasemid 5 mg", "Torasemid 10 mg", "Tramadol 50 mg", "Tramadol 100 mg",
	"Triatec 2.5 mg", "Triatec 5 mg", "Valium 5 mg", "Valium 10 mg",
	"Valsartan 80 mg", "Valsartan 160 mg", "Voltaren 50 mg", "Voltaren Dolo 25 mg",
	"Xanax 0.25 mg", "Xanax 0.5 mg", "Xarelto 10 mg", "Xarelto 15 mg",
	"Xarelto 20 mg", "Zaldiar 37.5/325 mg", "Zolpidem 10 mg", "Zyrtec 10 mg",
}

// Medications returns the full catalog.
func Medications() []string {
	out := make([]string, len(medicationCatalog))
	copy(out, medicationCatalog)
	return out
}

// FilterMedications narrows the catalog by case-insensitive substring match.
func FilterMedications(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Medications()
	}
	var out []string
	for _, med := range medicationCatalog {
		if strings.Contains(strings.ToLower(med), q) {
			out = append(out, med)
		}
	}
	return out
}
