package httpserver

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"
)

func TestAdUploadRejectsUnsupportedMIME(t *testing.T) {
	server, _ := newTestServer(t)
	cookie := registerAndLogin(t, server, "c@x.com", "corp", "company")

	rr := doUpload(t, server, "/api/ads/upload", cookie, "application/pdf", map[string]string{
		"title": "Not a video",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for pdf upload, got %d body=%s", rr.Code, rr.Body.String())
	}

	list := doJSON(t, server, http.MethodGet, "/api/ads", cookie, nil)
	var ads []any
	decodeBody(t, list, &ads)
	if len(ads) != 0 {
		t.Fatalf("rejected upload must not create a record: %v", ads)
	}
}

func TestAdUploadRejectsForeignCampaign(t *testing.T) {
	server, _ := newTestServer(t)
	owner := registerAndLogin(t, server, "owner@x.com", "owner", "company")
	other := registerAndLogin(t, server, "other@x.com", "other", "company")
	campaignID := createCampaignHTTP(t, server, owner, "Owned")

	rr := doUpload(t, server, "/api/ads/upload", other, "video/mp4", map[string]string{
		"title":      "Sneaky",
		"campaignId": fmt.Sprintf("%d", campaignID),
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for foreign campaign link, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAdUploadCreatesPendingAd(t *testing.T) {
	server, _ := newTestServer(t)
	cookie := registerAndLogin(t, server, "c@x.com", "corp", "company")
	campaignID := createCampaignHTTP(t, server, cookie, "Launch")

	rr := doUpload(t, server, "/api/ads/upload", cookie, "video/mp4", map[string]string{
		"title":       "Spring promo",
		"description": "30 second spot",
		"campaignId":  fmt.Sprintf("%d", campaignID),
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var ad struct {
		Status   string `json:"status"`
		FilePath string `json:"filePath"`
	}
	decodeBody(t, rr, &ad)
	if ad.Status != "pending" {
		t.Fatalf("new ads must be pending, got %q", ad.Status)
	}
	if ad.FilePath == "" {
		t.Fatal("stored path must be recorded")
	}
}

func TestAdUploadOverSizeLimitLeavesNoRecord(t *testing.T) {
	server, _ := newTestServer(t)
	cookie := registerAndLogin(t, server, "co@x.com", "acme", "company")
	server.adUploadLimit = 1 << 10

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="big.mp4"`)
	header.Set("Content-Type", "video/mp4")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part failed: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte("x"), 8<<10)); err != nil {
		t.Fatalf("write part failed: %v", err)
	}
	if err := writer.WriteField("title", "too big"); err != nil {
		t.Fatalf("write field failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/ads/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: cookie})
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an over-limit upload, got %d body=%s", rr.Code, rr.Body.String())
	}

	list := doJSON(t, server, http.MethodGet, "/api/ads", cookie, nil)
	if list.Code != http.StatusOK {
		t.Fatalf("list ads failed: %d", list.Code)
	}
	var ads []map[string]any
	decodeBody(t, list, &ads)
	if len(ads) != 0 {
		t.Fatalf("expected no ad records after a rejected upload, got %d", len(ads))
	}
}

func TestVideoUploadRequiresSession(t *testing.T) {
	server, _ := newTestServer(t)
	rr := doUpload(t, server, "/api/videos/upload", "", "video/mp4", map[string]string{"title": "x"})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestVideoLifecycleUploadProcessReady(t *testing.T) {
	server, clock := newTestServer(t)
	cookie := registerAndLogin(t, server, "v@x.com", "vlogger", "individual")

	empty := doJSON(t, server, http.MethodGet, "/api/videos", cookie, nil)
	if empty.Code != http.StatusOK || empty.Body.String() == "" {
		t.Fatalf("expected 200 with empty list, got %d", empty.Code)
	}

	rr := doUpload(t, server, "/api/videos/upload", cookie, "video/mp4", map[string]string{
		"title":         "My vlog",
		"category":      "lifestyle",
		"adPlacement":   "mid-roll",
		"adPreferences": `{"categories":["tech"]}`,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var uploaded struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	decodeBody(t, rr, &uploaded)
	if uploaded.Status != "processing" {
		t.Fatalf("fresh upload must be processing, got %q", uploaded.Status)
	}

	// Before the delay elapses the sweep promotes nothing.
	if err := server.videos.Sweep.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	path := fmt.Sprintf("/api/videos/%d", uploaded.ID)
	rr = doJSON(t, server, http.MethodGet, path, cookie, nil)
	var current struct {
		Status            string `json:"status"`
		ProcessedFilePath string `json:"processedFilePath"`
		Duration          int    `json:"duration"`
	}
	decodeBody(t, rr, &current)
	if current.Status != "processing" {
		t.Fatalf("video promoted before its delay: %+v", current)
	}

	clock.Advance(11 * time.Second)
	if err := server.videos.Sweep.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	rr = doJSON(t, server, http.MethodGet, path, cookie, nil)
	decodeBody(t, rr, &current)
	if current.Status != "ready" {
		t.Fatalf("expected ready after delay, got %+v", current)
	}
	if current.ProcessedFilePath == "" || current.Duration == 0 {
		t.Fatalf("promotion must populate artifacts: %+v", current)
	}
}

func TestDeleteBeforeDelayCancelsProcessing(t *testing.T) {
	server, clock := newTestServer(t)
	cookie := registerAndLogin(t, server, "v@x.com", "vlogger", "individual")

	rr := doUpload(t, server, "/api/videos/upload", cookie, "video/mp4", map[string]string{
		"title": "Short lived",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", rr.Code)
	}
	videoID := idFromBody(t, rr)

	path := fmt.Sprintf("/api/videos/%d", videoID)
	if rr := doJSON(t, server, http.MethodDelete, path, cookie, nil); rr.Code != http.StatusOK {
		t.Fatalf("delete failed: %d body=%s", rr.Code, rr.Body.String())
	}

	clock.Advance(time.Minute)
	if err := server.videos.Sweep.RunOnce(context.Background()); err != nil {
		t.Fatalf("sweep must tolerate deleted videos: %v", err)
	}
	if rr := doJSON(t, server, http.MethodGet, path, cookie, nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rr.Code)
	}
}

func TestPlacementTrackingProjectsOntoAd(t *testing.T) {
	server, _ := newTestServer(t)
	company := registerAndLogin(t, server, "c@x.com", "corp", "company")
	creator := registerAndLogin(t, server, "v@x.com", "vlogger", "individual")

	adUpload := doUpload(t, server, "/api/ads/upload", company, "video/mp4", map[string]string{
		"title": "Promo",
	})
	if adUpload.Code != http.StatusCreated {
		t.Fatalf("ad upload failed: %d", adUpload.Code)
	}
	adID := idFromBody(t, adUpload)

	videoUpload := doUpload(t, server, "/api/videos/upload", creator, "video/mp4", map[string]string{
		"title": "Host video",
	})
	if videoUpload.Code != http.StatusCreated {
		t.Fatalf("video upload failed: %d", videoUpload.Code)
	}
	videoID := idFromBody(t, videoUpload)

	placementResp := doJSON(t, server, http.MethodPost, fmt.Sprintf("/api/videos/%d/placements", videoID), creator, map[string]any{
		"adId":          adID,
		"placementTime": 30,
	})
	if placementResp.Code != http.StatusCreated {
		t.Fatalf("create placement failed: %d body=%s", placementResp.Code, placementResp.Body.String())
	}
	placementID := idFromBody(t, placementResp)

	track := doJSON(t, server, http.MethodPost, fmt.Sprintf("/api/placements/%d/track", placementID), creator, map[string]any{
		"views":  100,
		"clicks": 5,
	})
	if track.Code != http.StatusOK {
		t.Fatalf("track failed: %d body=%s", track.Code, track.Body.String())
	}

	// The projection rides the bus; poll the ad until it lands.
	deadline := time.Now().Add(2 * time.Second)
	for {
		rr := doJSON(t, server, http.MethodGet, fmt.Sprintf("/api/ads/%d", adID), company, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("get ad failed: %d", rr.Code)
		}
		var ad struct {
			Views       int64   `json:"views"`
			Clicks      int64   `json:"clicks"`
			Performance float64 `json:"performance"`
		}
		decodeBody(t, rr, &ad)
		if ad.Views == 100 && ad.Clicks == 5 {
			if ad.Performance != 5 {
				t.Fatalf("expected 5%% click-through, got %v", ad.Performance)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("engagement never reached the ad: %+v", ad)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDownloadCountsView(t *testing.T) {
	server, _ := newTestServer(t)
	cookie := registerAndLogin(t, server, "v@x.com", "vlogger", "individual")

	rr := doUpload(t, server, "/api/videos/upload", cookie, "video/mp4", map[string]string{
		"title": "Clip",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d", rr.Code)
	}
	videoID := idFromBody(t, rr)

	download := doJSON(t, server, http.MethodGet, fmt.Sprintf("/api/videos/%d/download", videoID), cookie, nil)
	if download.Code != http.StatusOK {
		t.Fatalf("download failed: %d body=%s", download.Code, download.Body.String())
	}

	rr = doJSON(t, server, http.MethodGet, fmt.Sprintf("/api/videos/%d", videoID), cookie, nil)
	var video struct {
		Views int64 `json:"views"`
	}
	decodeBody(t, rr, &video)
	if video.Views != 1 {
		t.Fatalf("expected 1 view after download, got %d", video.Views)
	}
}
