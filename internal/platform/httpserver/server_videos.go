package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	videoentities "advidly/contexts/creator-studio/video-service/domain/entities"
	videodomainerrors "advidly/contexts/creator-studio/video-service/domain/errors"
	videoports "advidly/contexts/creator-studio/video-service/ports"
	videohttp "advidly/contexts/creator-studio/video-service/transport/http"
	"advidly/internal/platform/filestore"
)

const defaultVideoUploadBytes = 2 << 30

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	resp, err := s.videos.Handler.ListVideosHandler(r.Context(), session.UserID)
	if err != nil {
		writeVideoDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleUploadVideo mirrors the ad upload protocol with the larger ceiling.
// The created record enters the processing pipeline and is promoted by the
// sweep worker.
func (s *Server) handleUploadVideo(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.videoUploadLimit)
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

	input := videoports.CreateVideoInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		AdPlacement: videoentities.AdPlacement(strings.TrimSpace(r.FormValue("adPlacement"))),
	}
	if raw := strings.TrimSpace(r.FormValue("adPreferences")); raw != "" {
		if !json.Valid([]byte(raw)) {
			writeError(w, http.StatusBadRequest, "invalid_ad_preferences", "adPreferences must be a JSON string")
			return
		}
		input.AdPreferences = json.RawMessage(raw)
	}

	path, size, err := s.files.Save(filestore.KindVideos, header.Filename, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage_failed", "could not store the uploaded file")
		return
	}
	input.RawFilePath = path

	resp, err := s.videos.Handler.CreateVideoHandler(r.Context(), session.UserID, input)
	if err != nil {
		_ = s.files.Remove(path)
		writeVideoDomainError(w, err)
		return
	}

	s.logger.Info("video stored",
		"event", "video_upload_stored",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"video_id", resp.ID,
		"bytes", size,
	)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	videoID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "video id must be an integer")
		return
	}

	resp, err := s.videos.Handler.GetVideoHandler(r.Context(), session.UserID, videoID)
	if err != nil {
		writeVideoDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateVideo(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	videoID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "video id must be an integer")
		return
	}

	var req videohttp.UpdateVideoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.videos.Handler.UpdateVideoHandler(r.Context(), session.UserID, videoID, req)
	if err != nil {
		writeVideoDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	videoID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "video id must be an integer")
		return
	}

	paths, err := s.videos.Handler.DeleteVideoHandler(r.Context(), session.UserID, videoID)
	if err != nil {
		writeVideoDomainError(w, err)
		return
	}
	// Missing files on disk do not fail the delete.
	for _, path := range paths {
		_ = s.files.Remove(path)
	}

	writeJSON(w, http.StatusOK, videohttp.DeleteResponse{Message: "video deleted"})
}

func (s *Server) handleDownloadVideo(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	videoID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "video id must be an integer")
		return
	}

	path, err := s.videos.Handler.DownloadVideoHandler(r.Context(), session.UserID, videoID)
	if err != nil {
		writeVideoDomainError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	http.ServeFile(w, r, path)
}

func (s *Server) handleListPlacements(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	videoID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "video id must be an integer")
		return
	}

	resp, err := s.videos.Handler.ListPlacementsHandler(r.Context(), session.UserID, videoID)
	if err != nil {
		writeVideoDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePlacement(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	videoID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "video id must be an integer")
		return
	}

	var req videohttp.CreatePlacementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.videos.Handler.CreatePlacementHandler(r.Context(), session.UserID, videoID, req)
	if err != nil {
		writeVideoDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// handleTrackPlacement is authenticated but not ownership-checked; any
// logged-in viewer's playback may report engagement.
func (s *Server) handleTrackPlacement(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentSession(w, r); !ok {
		return
	}
	placementID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "placement id must be an integer")
		return
	}

	var req videohttp.TrackPlacementRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
			return
		}
	}

	resp, err := s.videos.Handler.TrackPlacementHandler(r.Context(), placementID, req)
	if err != nil {
		writeVideoDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatorSummary(w http.ResponseWriter, r *http.Request) {
	session, ok := s.currentSession(w, r)
	if !ok {
		return
	}
	if !s.requireUserType(w, session, "individual") {
		return
	}

	resp, err := s.videos.Handler.CreatorSummaryHandler(r.Context(), session.UserID)
	if err != nil {
		writeVideoDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeVideoDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, videodomainerrors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", "video input is invalid")
	case errors.Is(err, videodomainerrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "entity belongs to another user")
	case errors.Is(err, videodomainerrors.ErrVideoNotFound):
		writeError(w, http.StatusNotFound, "video_not_found", "video not found")
	case errors.Is(err, videodomainerrors.ErrPlacementNotFound):
		writeError(w, http.StatusNotFound, "placement_not_found", "placement not found")
	case errors.Is(err, videodomainerrors.ErrVideoNotReady):
		writeError(w, http.StatusNotFound, "file_not_available", "video file is not available yet")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
