package qianbao

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Draft is a validated submission, ready to be stored.
type Draft struct {
	Name   string
	Amount decimal.Decimal
	Icon   Icon
}

func (d Draft) asset(id string) Asset {
	return Asset{ID: id, Name: d.Name, Amount: d.Amount, Icon: d.Icon}
}

// FieldErrors maps form fields to the message displayed next to them.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(e))
	for _, f := range fields {
		msgs = append(msgs, f+": "+e[f])
	}
	return strings.Join(msgs, "; ")
}

// Form is a pending add or edit submission.
//
// The icon selection is either a preset or a custom image: selecting one
// clears the other.
type Form struct {
	Name   string `form:"name" validate:"required"`
	Amount string `form:"amount" validate:"required,max=40,numeric"`

	preset string
	custom string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

// NewForm returns an empty form, as opened by the add action.
func NewForm() *Form { return &Form{} }

// EditForm returns a form pre-filled with a's values.
func EditForm(a Asset) *Form {
	return &Form{
		Name:   a.Name,
		Amount: a.Amount.String(),
		preset: a.Icon.preset,
		custom: a.Icon.custom,
	}
}

// SelectPreset selects a preset icon and drops any custom image.
func (f *Form) SelectPreset(symbol string) error {
	if !IsPreset(symbol) {
		return fmt.Errorf("unknown preset icon %q", symbol)
	}
	f.preset, f.custom = symbol, ""
	return nil
}

// SetCustom selects a custom image and drops the preset selection.
// An empty data URI is the same as ClearCustom.
func (f *Form) SetCustom(dataURI string) {
	if dataURI == "" {
		f.ClearCustom()
		return
	}
	f.preset, f.custom = "", dataURI
}

// UploadCustom reads an image and selects it as the custom icon.
func (f *Form) UploadCustom(r io.Reader) error {
	uri, err := EncodeDataURI(r)
	if err != nil {
		return err
	}
	f.SetCustom(uri)
	return nil
}

// ClearCustom removes the custom image and falls back to the default preset.
func (f *Form) ClearCustom() {
	f.preset, f.custom = DefaultIcon().preset, ""
}

// Reset discards everything pending in the form.
func (f *Form) Reset() { *f = Form{} }

// SelectedPreset returns the preset highlighted in the picker, "" when a
// custom image is selected.
func (f *Form) SelectedPreset() string {
	if f.custom != "" {
		return ""
	}
	if f.preset == "" {
		return DefaultIcon().preset
	}
	return f.preset
}

// CustomImage returns the selected custom image, if any.
func (f *Form) CustomImage() string { return f.custom }

// Icon returns the icon the submission will use.
func (f *Form) Icon() Icon {
	if f.custom != "" {
		return CustomIcon(f.custom)
	}
	return PresetIcon(f.SelectedPreset())
}

// Validate checks the required fields and returns the draft to store.
//
// The error, if any, is always a FieldErrors.
func (f *Form) Validate() (Draft, error) {
	sub := Form{
		Name:   strings.TrimSpace(f.Name),
		Amount: strings.TrimSpace(f.Amount),
	}
	if err := validate.Struct(sub); err != nil {
		return Draft{}, fieldErrors(err)
	}
	amount, err := decimal.NewFromString(sub.Amount)
	if err != nil {
		return Draft{}, FieldErrors{"amount": "The asset amount must be a number"}
	}
	return Draft{Name: sub.Name, Amount: amount, Icon: f.Icon()}, nil
}

// fieldErrors turns validator errors into messages displayed inline.
func fieldErrors(err error) FieldErrors {
	errs := make(FieldErrors)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = err.Error()
		return errs
	}
	for _, e := range verrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errs[field] = fmt.Sprintf("Please enter the asset %s", field)
		case "numeric":
			errs[field] = fmt.Sprintf("The asset %s must be a number", field)
		case "max":
			errs[field] = fmt.Sprintf("The asset %s is too long", field)
		default:
			errs[field] = fmt.Sprintf("%s is invalid (%s)", field, e.Tag())
		}
	}
	return errs
}
