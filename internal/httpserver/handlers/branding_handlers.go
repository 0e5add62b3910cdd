package handlers

import (
	"errors"
	"net/http"

	"clientportal/internal/company"
	"clientportal/internal/forms"
	"clientportal/internal/models"
)

func GetBranding(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var current *models.Company
		if c, ok := d.Company.Current(); ok {
			current = &c
		}
		respondJSON(w, map[string]any{
			"company": current,
			"loading": d.Company.Loading(),
			"form":    forms.NewBrandingForm(current),
		})
	}
}

// UpdateBranding applies the profile half of the form, then the palette.
func UpdateBranding(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := d.Company.Current()
		if !ok {
			http.Error(w, company.ErrNoCompany.Error(), http.StatusConflict)
			return
		}
		form := forms.NewBrandingForm(&c)
		if !decode(w, r, &form) {
			return
		}
		if errs := forms.Validate(form); errs != nil {
			respondInvalid(w, errs)
			return
		}
		if _, err := d.Company.UpdateCompany(r.Context(), form.CompanyPatch()); err != nil {
			companyError(w, err)
			return
		}
		updated, err := d.Company.UpdateBranding(r.Context(), form.BrandingPatch())
		if err != nil {
			companyError(w, err)
			return
		}
		respondJSON(w, updated)
	}
}

func companyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, company.ErrNoCompany), errors.Is(err, company.ErrStale):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
