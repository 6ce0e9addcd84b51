package modal

import (
	"context"
	"io"
	"strings"

	"healthdocs-backend/docengine/model"
	"healthdocs-backend/docengine/workflow"
)

// Mode selects which of the mutually exclusive editing surfaces is shown.
type Mode int

const (
	ModeNone Mode = iota
	ModeNew
	ModeEdit
	ModeMedication
)

// CustomProvider is the provider choice meaning "enter a new name".
const CustomProvider = "__custom__"

// Form is the ephemeral state of the modal. ProviderChoice is either an
// existing provider name or CustomProvider, in which case ProviderCustom
// holds the typed name.
type Form struct {
	Title          string
	ServiceDate    string
	DocType        model.DocType
	Medication     string
	ProviderChoice string
	ProviderCustom string
	FileName       string
	File           io.Reader
}

// Controller owns the modal state and form validation, delegating
// persistence to the mutation workflow. At most one surface is open at a
// time.
type Controller struct {
	wf    *workflow.Workflow
	mode  Mode
	docID string
	form  Form
}

// NewController creates a closed controller bound to the workflow.
func NewController(wf *workflow.Workflow) *Controller {
	return &Controller{wf: wf}
}

// Mode returns the active surface.
func (c *Controller) Mode() Mode { return c.mode }

// DocumentID returns the record the modal is editing, if any.
func (c *Controller) DocumentID() string { return c.docID }

// Form returns the current form state.
func (c *Controller) Form() Form { return c.form }

// OpenNew opens the create surface with a blank form. The provider choice
// defaults to the first known provider, or to custom entry when none exist.
func (c *Controller) OpenNew() {
	c.mode = ModeNew
	c.docID = ""
	c.form = Form{DocType: model.DocTypes()[0]}
	if providers := c.wf.Store.Providers(); len(providers) > 0 {
		c.form.ProviderChoice = providers[0]
	} else {
		c.form.ProviderChoice = CustomProvider
	}
}

// OpenEdit opens the full edit surface for an existing record. Unknown IDs
// leave the controller untouched.
func (c *Controller) OpenEdit(id string) bool {
	rec, ok := c.wf.Store.Get(id)
	if !ok {
		return false
	}
	c.mode = ModeEdit
	c.docID = id
	c.form = Form{
		Title:       rec.Title,
		ServiceDate: truncateDate(rec.ServiceDate),
		DocType:     rec.DocType,
		Medication:  rec.Medication,
	}
	if containsString(c.wf.Store.Providers(), rec.Provider) {
		c.form.ProviderChoice = rec.Provider
	} else {
		c.form.ProviderChoice = CustomProvider
		c.form.ProviderCustom = rec.Provider
	}
	return true
}

// OpenMedication opens the medication-only surface for an existing record.
func (c *Controller) OpenMedication(id string) bool {
	rec, ok := c.wf.Store.Get(id)
	if !ok {
		return false
	}
	c.mode = ModeMedication
	c.docID = id
	c.form = Form{Medication: rec.Medication}
	return true
}

// Close dismisses the modal. In-flight mutations are detached, not aborted:
// their results still reach the store, without further user feedback.
func (c *Controller) Close() {
	c.mode = ModeNone
	c.docID = ""
	c.form = Form{}
	c.wf.DetachAll()
}

// SetTitle updates the title field.
func (c *Controller) SetTitle(title string) { c.form.Title = title }

// SetServiceDate updates the service date field (ISO yyyy-mm-dd).
func (c *Controller) SetServiceDate(date string) { c.form.ServiceDate = date }

// SetProvider updates the provider choice and, for custom entry, the typed
// name.
func (c *Controller) SetProvider(choice, custom string) {
	c.form.ProviderChoice = choice
	c.form.ProviderCustom = custom
}

// SetDocType switches the document type. Moving away from prescription
// clears whatever was typed into the medication field.
func (c *Controller) SetDocType(t model.DocType) {
	c.form.DocType = t
	if t != model.DocTypePrescription {
		c.form.Medication = ""
	}
}

// SetMedication updates the medication field.
func (c *Controller) SetMedication(med string) { c.form.Medication = med }

// AttachFile records the chosen file for a create.
func (c *Controller) AttachFile(name string, r io.Reader) {
	c.form.FileName = name
	c.form.File = r
}

// Save validates the form for the active mode and delegates to the workflow.
// Validation failures are surfaced to the user here and never reach the
// service. The create and medication surfaces close on success; the edit
// surface stays open.
func (c *Controller) Save(ctx context.Context) (model.DocumentRecord, error) {
	switch c.mode {
	case ModeNew:
		return c.saveNew(ctx)
	case ModeEdit:
		return c.saveEdit(ctx)
	case ModeMedication:
		return c.saveMedication(ctx)
	}
	return model.DocumentRecord{}, nil
}

func (c *Controller) saveNew(ctx context.Context) (model.DocumentRecord, error) {
	if !c.requiredFieldsPresent() {
		c.notify("Bitte alle Pflichtfelder ausfuellen.")
		return model.DocumentRecord{}, workflow.ErrValidation
	}
	if c.form.File == nil {
		c.notify("Bitte eine Datei auswaehlen.")
		return model.DocumentRecord{}, workflow.ErrNoFile
	}

	rec, err := c.wf.Create(ctx, workflow.CreateInput{
		Title:       c.form.Title,
		ServiceDate: c.form.ServiceDate,
		Provider:    c.providerValue(),
		DocType:     c.form.DocType,
		Medication:  c.form.Medication,
		FileName:    c.form.FileName,
		File:        c.form.File,
	})
	if err != nil {
		return model.DocumentRecord{}, err
	}
	c.Close()
	return rec, nil
}

func (c *Controller) saveEdit(ctx context.Context) (model.DocumentRecord, error) {
	if !c.requiredFieldsPresent() {
		c.notify("Bitte alle Pflichtfelder ausfuellen.")
		return model.DocumentRecord{}, workflow.ErrValidation
	}
	return c.wf.Edit(ctx, c.docID, workflow.EditInput{
		Title:       c.form.Title,
		ServiceDate: c.form.ServiceDate,
		Provider:    c.providerValue(),
		DocType:     c.form.DocType,
		Medication:  c.form.Medication,
	})
}

func (c *Controller) saveMedication(ctx context.Context) (model.DocumentRecord, error) {
	if strings.TrimSpace(c.form.Medication) == "" {
		c.notify("Bitte Medikament eingeben.")
		return model.DocumentRecord{}, workflow.ErrValidation
	}
	rec, err := c.wf.EditMedication(ctx, c.docID, c.form.Medication)
	if err != nil {
		return model.DocumentRecord{}, err
	}
	c.Close()
	return rec, nil
}

// Delete runs the confirmation-gated delete for the record under edit and
// closes the modal on success.
func (c *Controller) Delete(ctx context.Context) error {
	if c.mode != ModeEdit || c.docID == "" {
		return nil
	}
	existed := c.wf.Store.Len()
	if err := c.wf.Delete(ctx, c.docID); err != nil {
		return err
	}
	if c.wf.Store.Len() < existed {
		c.Close()
	}
	return nil
}

func (c *Controller) requiredFieldsPresent() bool {
	return strings.TrimSpace(c.form.Title) != "" &&
		strings.TrimSpace(c.form.ServiceDate) != "" &&
		c.providerValue() != "" &&
		c.form.DocType.Valid()
}

func (c *Controller) providerValue() string {
	if c.form.ProviderChoice == CustomProvider {
		return strings.TrimSpace(c.form.ProviderCustom)
	}
	return strings.TrimSpace(c.form.ProviderChoice)
}

func (c *Controller) notify(message string) {
	if c.wf.Notify != nil {
		c.wf.Notify(message)
	}
}

func truncateDate(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
