package httpserver

import (
	"errors"
	"net/http"

	campaigndomainerrors "advidly/contexts/ad-operations/campaign-service/domain/errors"
	campaignhttp "advidly/contexts/ad-operations/campaign-service/transport/http"
)

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	resp, err := s.campaigns.Handler.ListCampaignsHandler(r.Context(), session.UserID)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	var req campaignhttp.CreateCampaignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.campaigns.Handler.CreateCampaignHandler(r.Context(), session.UserID, req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	campaignID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "campaign id must be an integer")
		return
	}

	resp, err := s.campaigns.Handler.GetCampaignHandler(r.Context(), session.UserID, campaignID)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	campaignID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "campaign id must be an integer")
		return
	}

	var req campaignhttp.UpdateCampaignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.campaigns.Handler.UpdateCampaignHandler(r.Context(), session.UserID, campaignID, req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	campaignID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "campaign id must be an integer")
		return
	}

	if err := s.campaigns.Handler.DeleteCampaignHandler(r.Context(), session.UserID, campaignID); err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaignhttp.DeleteResponse{Message: "campaign deleted"})
}

func (s *Server) handleCompanySummary(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	if !s.requireUserType(w, session, "company") {
		return
	}

	resp, err := s.campaigns.Handler.CompanySummaryHandler(r.Context(), session.UserID)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeCampaignDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, campaigndomainerrors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", "campaign input is invalid")
	case errors.Is(err, campaigndomainerrors.ErrCampaignNotOwned):
		writeError(w, http.StatusBadRequest, "campaign_not_owned", "campaign does not exist or belongs to another user")
	case errors.Is(err, campaigndomainerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "entity belongs to another user")
	case errors.Is(err, campaigndomainerrors.ErrCampaignNotFound):
		writeError(w, http.StatusNotFound, "campaign_not_found", "campaign not found")
	case errors.Is(err, campaigndomainerrors.ErrAdNotFound):
		writeError(w, http.StatusNotFound, "ad_not_found", "ad not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
