package web

import (
	"errors"
	"net/http"

	"github.com/etnz/qianbao"
	"github.com/labstack/echo/v4"
)

// Mode tells whether the dialog creates or edits an asset.
type Mode string

const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

// customIcon is the value of the icon field when the custom image is selected.
const customIcon = "custom"

// Dialog is the state of the add/edit modal for one request.
//
// It lives only as long as the request: closing the modal is a plain
// navigation, so nothing pending survives it.
type Dialog struct {
	Mode   Mode
	ID     string // edited asset, empty in ModeAdd
	Form   *qianbao.Form
	Errors qianbao.FieldErrors
}

// Option is one preset in the icon picker.
type Option struct {
	Symbol   string
	Label    string
	Selected bool
}

func addDialog() *Dialog { return &Dialog{Mode: ModeAdd, Form: qianbao.NewForm()} }

func editDialog(a qianbao.Asset) *Dialog {
	return &Dialog{Mode: ModeEdit, ID: a.ID, Form: qianbao.EditForm(a)}
}

// Title of the modal.
func (d *Dialog) Title() string {
	if d.Mode == ModeEdit {
		return "Edit asset"
	}
	return "Add asset"
}

// Action is the URL the form is posted to.
func (d *Dialog) Action() string {
	if d.Mode == ModeEdit {
		return "/assets/" + d.ID
	}
	return "/assets"
}

// Options returns the presets of the picker, with the selected one marked.
func (d *Dialog) Options() []Option {
	selected := d.Form.SelectedPreset()
	var opts []Option
	for _, p := range qianbao.Presets() {
		opts = append(opts, Option{Symbol: p.Symbol, Label: p.Label, Selected: p.Symbol == selected})
	}
	return opts
}

// bind copies the submitted fields into the form.
//
// The icon field holds a preset symbol or "custom". A custom image comes
// either from the upload field or, when nothing new was uploaded, from the
// customIcon field carrying the image already selected.
func (d *Dialog) bind(c echo.Context) error {
	if err := c.Bind(d.Form); err != nil {
		return err
	}

	upload, err := c.FormFile("upload")
	switch {
	case err == nil:
		f, err := upload.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "cannot read the uploaded image").SetInternal(err)
		}
		defer f.Close()
		return d.Form.UploadCustom(f)
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form").SetInternal(err)
	}

	switch icon := c.FormValue("icon"); icon {
	case "":
		// keep the current selection
	case customIcon:
		d.Form.SetCustom(c.FormValue("customIcon"))
	default:
		if err := d.Form.SelectPreset(icon); err != nil {
			d.Errors = qianbao.FieldErrors{"icon": "Please choose one of the icons"}
		}
	}
	return nil
}

// validate returns the draft, or records the field errors in the dialog.
func (d *Dialog) validate() (qianbao.Draft, bool) {
	draft, err := d.Form.Validate()
	var ferrs qianbao.FieldErrors
	if errors.As(err, &ferrs) {
		if d.Errors == nil {
			d.Errors = make(qianbao.FieldErrors)
		}
		for k, v := range ferrs {
			d.Errors[k] = v
		}
	}
	return draft, len(d.Errors) == 0
}
