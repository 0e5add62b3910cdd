package handlers

import (
	"errors"
	"net/http"
	"time"

	"clientportal/internal/auth"
	"clientportal/internal/forms"
	"clientportal/internal/models"
	"clientportal/internal/session"
)

func Login(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form forms.LoginForm
		if !decode(w, r, &form) {
			return
		}
		if errs := forms.Validate(form); errs != nil {
			respondInvalid(w, errs)
			return
		}
		sess, err := d.Sessions.Login(r.Context(), form.Email, form.Password)
		if err != nil {
			http.Error(w, "login failed", http.StatusInternalServerError)
			return
		}
		issue(d, w, sess, form.RememberMe)
	}
}

func Signup(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := forms.NewSignupForm()
		if !decode(w, r, &form) {
			return
		}
		if errs := forms.Validate(form); errs != nil {
			respondInvalid(w, errs)
			return
		}
		sess, err := d.Sessions.Signup(r.Context(), form.Profile())
		if err != nil {
			http.Error(w, "signup failed", http.StatusInternalServerError)
			return
		}
		issue(d, w, sess, false)
	}
}

// issue signs a token for sess and hands it back as cookie and body.
// Without persist the cookie lives for the browser session only.
func issue(d *Deps, w http.ResponseWriter, sess models.Session, persist bool) {
	tok, err := d.Signer.Sign(sess)
	if err != nil {
		d.Log.Errorw("token sign failed", "user_id", sess.ID, "error", err)
		http.Error(w, "token error", http.StatusInternalServerError)
		return
	}
	c := &http.Cookie{
		Name:     d.SessionCookie,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if persist {
		c.MaxAge = int(d.Signer.TTL() / time.Second)
	}
	http.SetCookie(w, c)
	respondJSON(w, map[string]any{"token": tok, "user": sess})
}

func Logout(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Sessions.Logout(r.Context()); err != nil && !errors.Is(err, session.ErrNoSession) {
			http.Error(w, "logout failed", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: d.SessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
		w.WriteHeader(http.StatusNoContent)
	}
}

func Me(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := auth.SessionFrom(r.Context())
		respondJSON(w, sess)
	}
}
