package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/thurahtetaung/universal-yoga/config"
	"github.com/thurahtetaung/universal-yoga/internal/dto"
	"github.com/thurahtetaung/universal-yoga/pkg/syncclient"
)

// ── fakes ──

type fakeProber struct{ up bool }

func (p fakeProber) Available(context.Context) bool { return p.up }

type fakeUploader struct {
	resp     *syncclient.UploadResponse
	err      error
	calls    int
	lastBody any
}

func (u *fakeUploader) Upload(_ context.Context, payload any) (*syncclient.UploadResponse, error) {
	u.calls++
	u.lastBody = payload
	return u.resp, u.err
}

func setupTestSyncService(up bool, uploader Uploader, cfg *config.SyncConfig) (SyncService, *mockStore) {
	store := newMockStore()
	if cfg == nil {
		cfg = &config.SyncConfig{}
	}
	return NewSyncService(store.repo, uploader, fakeProber{up: up}, cfg, testLogger), store
}

// ── Upload ──

func TestSyncService_Upload_NoConnectivity(t *testing.T) {
	uploader := &fakeUploader{resp: &syncclient.UploadResponse{Success: true}}
	svc, _ := setupTestSyncService(false, uploader, nil)

	if _, err := svc.Upload(context.Background()); !errors.Is(err, ErrNoConnectivity) {
		t.Errorf("expected ErrNoConnectivity, got %v", err)
	}
	if uploader.calls != 0 {
		t.Error("nothing may be sent without connectivity")
	}
}

func TestSyncService_Upload_Success(t *testing.T) {
	uploader := &fakeUploader{resp: &syncclient.UploadResponse{Success: true}}
	svc, store := setupTestSyncService(true, uploader, nil)
	c := store.addCourse("Monday", "9:00 AM")
	store.addClass(c.ID, "November 4, 2024", "Sarah")
	store.addClass(c.ID, "November 11, 2024", "Sarah")

	result, err := svc.Upload(context.Background())
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if result.Message != "Data uploaded successfully" || result.Courses != 1 || result.Classes != 2 {
		t.Errorf("unexpected result: %+v", result)
	}
	if uploader.calls != 1 {
		t.Errorf("expected one upload, got %d", uploader.calls)
	}
}

func TestSyncService_Upload_TransportError(t *testing.T) {
	cause := errors.New("connection reset by peer")
	svc, _ := setupTestSyncService(true, &fakeUploader{err: cause}, nil)

	_, err := svc.Upload(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !errors.Is(err, cause) || te.Error() != "network error: connection reset by peer" {
		t.Errorf("transport message must be carried verbatim: %v", te)
	}
}

func TestSyncService_Upload_ServerRejected(t *testing.T) {
	msg := "Invalid course data"
	svc, _ := setupTestSyncService(true, &fakeUploader{resp: &syncclient.UploadResponse{Success: false, Message: &msg}}, nil)

	_, err := svc.Upload(context.Background())
	var re *ServerRejectedError
	if !errors.As(err, &re) || re.Message != msg {
		t.Errorf("expected ServerRejectedError(%q), got %v", msg, err)
	}
}

func TestSyncService_Upload_ServerRejectedWithoutMessage(t *testing.T) {
	svc, _ := setupTestSyncService(true, &fakeUploader{resp: &syncclient.UploadResponse{}}, nil)

	_, err := svc.Upload(context.Background())
	var re *ServerRejectedError
	if !errors.As(err, &re) || re.Message != "Unknown error" {
		t.Errorf("expected Unknown error, got %v", err)
	}
}

func TestSyncService_UploadAsync_ReportsCompletion(t *testing.T) {
	svc, _ := setupTestSyncService(true, &fakeUploader{resp: &syncclient.UploadResponse{Success: true}}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	svc.UploadAsync(ctx, func(_ *dto.SyncResultResponse, err error) { done <- err })
	cancel() // the request that started the upload may end first

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected success, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("completion callback never ran")
	}
}

// ── Payload ──

func TestSyncService_BuildPayload_MatchesStore(t *testing.T) {
	svc, store := setupTestSyncService(true, &fakeUploader{}, nil)
	c := store.addCourse("Monday", "9:30 AM")
	store.courses.courses[c.ID].Description = strPtr("Morning flow")
	cl := store.addClass(c.ID, "November 4, 2024", "Sarah")
	store.classes.classes[cl.ID].Comments = strPtr("Bring water")

	payload, err := svc.BuildPayload(context.Background())
	if err != nil {
		t.Fatalf("BuildPayload: %v", err)
	}

	raw, _ := json.Marshal(payload)
	var decoded struct {
		Courses []map[string]interface{} `json:"courses"`
		Classes []map[string]interface{} `json:"classes"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Courses) != 1 || len(decoded.Classes) != 1 {
		t.Fatalf("expected one course and one class: %s", raw)
	}

	course := decoded.Courses[0]
	wantCourse := map[string]interface{}{
		"id": float64(c.ID), "type": "Flow Yoga", "dayOfWeek": "Monday", "timeOfDay": "9:30 AM",
		"duration": float64(60), "capacity": float64(20), "price": 12.5, "description": "Morning flow",
	}
	for k, v := range wantCourse {
		if course[k] != v {
			t.Errorf("course.%s: expected %v, got %v", k, v, course[k])
		}
	}

	class := decoded.Classes[0]
	wantClass := map[string]interface{}{
		"id": float64(cl.ID), "courseId": float64(c.ID), "date": "November 4, 2024",
		"teacher": "Sarah", "comments": "Bring water",
	}
	for k, v := range wantClass {
		if class[k] != v {
			t.Errorf("class.%s: expected %v, got %v", k, v, class[k])
		}
	}
}

func TestSyncService_BuildPayload_NullsAndPriceString(t *testing.T) {
	svc, store := setupTestSyncService(true, &fakeUploader{}, &config.SyncConfig{PriceAsString: true})
	c := store.addCourse("Monday", "9:30 AM")
	store.addClass(c.ID, "November 4, 2024", "Sarah")

	payload, _ := svc.BuildPayload(context.Background())
	raw, _ := json.Marshal(payload)

	var decoded struct {
		Courses []map[string]interface{} `json:"courses"`
		Classes []map[string]interface{} `json:"classes"`
	}
	json.Unmarshal(raw, &decoded)

	if decoded.Courses[0]["price"] != "12.50" {
		t.Errorf("expected price string, got %v", decoded.Courses[0]["price"])
	}
	if v, ok := decoded.Courses[0]["description"]; !ok || v != nil {
		t.Errorf("absent description must be sent as null, got %v (present=%v)", v, ok)
	}
	if v, ok := decoded.Classes[0]["comments"]; !ok || v != nil {
		t.Errorf("absent comments must be sent as null, got %v (present=%v)", v, ok)
	}
}

func TestSyncService_Upload_EndToEnd(t *testing.T) {
	var received dto.SyncPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	svc, store := setupTestSyncService(true, syncclient.New(srv.URL, time.Second), nil)
	c := store.addCourse("Monday", "9:00 AM")
	store.addClass(c.ID, "November 4, 2024", "Sarah")

	if _, err := svc.Upload(context.Background()); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(received.Courses) != 1 || received.Courses[0].DayOfWeek != "Monday" {
		t.Errorf("server got %+v", received.Courses)
	}
	if len(received.Classes) != 1 || received.Classes[0].CourseID != c.ID {
		t.Errorf("server got %+v", received.Classes)
	}
}
