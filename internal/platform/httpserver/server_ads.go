package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	campaignports "advidly/contexts/ad-operations/campaign-service/ports"
	campaignhttp "advidly/contexts/ad-operations/campaign-service/transport/http"
	"advidly/internal/platform/filestore"
)

const (
	defaultAdUploadBytes = 100 << 20

	// Form parse buffer; anything larger spills to temp files.
	multipartMemoryBytes = 32 << 20

	defaultAdDurationSeconds = 30
)

func (s *Server) handleListAds(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	resp, err := s.campaigns.Handler.ListAdsHandler(r.Context(), session.UserID)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleUploadAd enforces the size ceiling and MIME allowlist before any
// record is created; on a failed create the stored file is unlinked again.
func (s *Server) handleUploadAd(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.adUploadLimit)
	if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_upload", "upload must be multipart and within the size limit")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing_file", "a file part is required")
		return
	}
	defer file.Close()

	if !filestore.AllowedMIME(header.Header.Get("Content-Type")) {
		writeError(w, http.StatusBadRequest, "unsupported_media", "file type is not an accepted video container")
		return
	}

	input := campaignports.CreateAdInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Duration:    defaultAdDurationSeconds,
	}
	if raw := strings.TrimSpace(r.FormValue("campaignId")); raw != "" {
		campaignID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_campaign_id", "campaignId must be an integer")
			return
		}
		input.CampaignID = &campaignID
	}
	if raw := strings.TrimSpace(r.FormValue("duration")); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil || duration <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_duration", "duration must be a positive integer")
			return
		}
		input.Duration = duration
	}

	path, size, err := s.files.Save(filestore.KindAds, header.Filename, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failed", "could not store the uploaded file")
		return
	}
	input.FilePath = path

	resp, err := s.campaigns.Handler.CreateAdHandler(r.Context(), session.UserID, input)
	if err != nil {
		_ = s.files.Remove(path)
		writeCampaignDomainError(w, err)
		return
	}

	s.logger.Info("ad creative stored",
		"event", "ad_upload_stored",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"ad_id", resp.ID,
		"bytes", size,
	)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetAd(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	adID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "ad id must be an integer")
		return
	}

	resp, err := s.campaigns.Handler.GetAdHandler(r.Context(), session.UserID, adID)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateAd(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	adID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "ad id must be an integer")
		return
	}

	var req campaignhttp.UpdateAdRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.campaigns.Handler.UpdateAdHandler(r.Context(), session.UserID, adID, req)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteAd(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	adID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "ad id must be an integer")
		return
	}

	filePath, err := s.campaigns.Handler.DeleteAdHandler(r.Context(), session.UserID, adID)
	if err != nil {
		writeCampaignDomainError(w, err)
		return
	}
	// A missing file on disk does not fail the delete.
	_ = s.files.Remove(filePath)

	writeJSON(w, http.StatusOK, campaignhttp.DeleteResponse{Message: "ad deleted"})
}
