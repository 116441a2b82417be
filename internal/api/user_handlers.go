package api

import (
	"net"
	"net/http"

	"github.com/gorilla/mux"

	"portforyou/internal/apperrors"
	"portforyou/internal/models"
	"portforyou/internal/user"
)

func (s *server) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.GetUser(r.Context(), currentUser(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *server) getUserByEmail(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.GetUserByEmail(r.Context(), currentUser(r.Context()), mux.Vars(r)["email"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context(), currentUser(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *server) updateUser(w http.ResponseWriter, r *http.Request) {
	var patch models.UserPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.users.UpdateUser(r.Context(), currentUser(r.Context()), mux.Vars(r)["id"], patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *server) deleteUser(w http.ResponseWriter, r *http.Request) {
	ok, err := s.users.DeleteUser(r.Context(), currentUser(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": ok})
}

func (s *server) updateTemplate(w http.ResponseWriter, r *http.Request) {
	variant, err := parseVariant(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var patch any
	switch variant {
	case models.VariantArik:
		patch = &models.ArikTemplatePatch{}
	case models.VariantNova:
		patch = &models.NovaTemplatePatch{}
	}
	if err := decodeJSON(w, r, patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.users.UpdateTemplate(r.Context(), currentUser(r.Context()), mux.Vars(r)["id"], variant, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *server) addSelectedTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	u, err := s.users.AddSelectedTemplate(r.Context(), currentUser(r.Context()), vars["id"], vars["name"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *server) removeSelectedTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	u, err := s.users.RemoveSelectedTemplate(r.Context(), currentUser(r.Context()), vars["id"], vars["name"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *server) updatePreferences(w http.ResponseWriter, r *http.Request) {
	var patch models.PreferencesPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.users.UpdatePreferences(r.Context(), currentUser(r.Context()), mux.Vars(r)["id"], patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// recordVisit is public: it is called from rendered templates.
func (s *server) recordVisit(w http.ResponseWriter, r *http.Request) {
	variant, err := parseVariant(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var in user.VisitInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if in.IP == "" {
		in.IP = clientIP(r)
	}
	ok, err := s.users.RecordVisit(r.Context(), mux.Vars(r)["id"], variant, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

func (s *server) templateAnalytics(w http.ResponseWriter, r *http.Request) {
	variant, err := parseVariant(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	a, err := s.users.GetAnalytics(r.Context(), currentUser(r.Context()), mux.Vars(r)["id"], variant)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func parseVariant(r *http.Request) (models.Variant, error) {
	v, err := models.ParseVariant(mux.Vars(r)["variant"])
	if err != nil {
		return "", apperrors.Validation("Invalid template name")
	}
	return v, nil
}

// clientIP is the peer address. ProxyHeaders has already applied
// X-Forwarded-For when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
