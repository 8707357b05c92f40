package detections

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gridsight/gridsight/internal/timeline"
	"github.com/gridsight/gridsight/internal/vision"
)

// fakeSystem backs handler tests with an in-memory store that mirrors
// the mutation contract: every successful add, update, or delete records
// exactly one event, and a failed lookup records none.
type fakeSystem struct {
	detections map[uuid.UUID]Detection
	events     []string
}

func newFakeSystem(seed ...Detection) *fakeSystem {
	f := &fakeSystem{detections: map[uuid.UUID]Detection{}}
	for _, d := range seed {
		f.detections[d.ID] = d
	}
	return f
}

func (f *fakeSystem) Handler() *Handler { return nil }

func (f *fakeSystem) ListByInspection(ctx context.Context, number string) ([]Detection, error) {
	items := []Detection{}
	for _, d := range f.detections {
		if d.InspectionNumber == number {
			items = append(items, d)
		}
	}
	return items, nil
}

func (f *fakeSystem) Find(ctx context.Context, id uuid.UUID) (*Detection, error) {
	d, ok := f.detections[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (f *fakeSystem) Ingest(ctx context.Context, number string, result *vision.Result) ([]Detection, error) {
	return []Detection{}, nil
}

func (f *fakeSystem) Analyze(ctx context.Context, number string) ([]Detection, error) {
	return []Detection{}, nil
}

func (f *fakeSystem) Add(ctx context.Context, number string, cmd AddCommand) (*Detection, error) {
	d := Detection{
		ID:               uuid.New(),
		InspectionNumber: number,
		Width:            cmd.Width,
		Height:           cmd.Height,
		X:                cmd.X,
		Y:                cmd.Y,
		Confidence:       cmd.Confidence,
		ClassID:          cmd.ClassID,
		ClassName:        cmd.ClassName,
		CreatedAt:        time.Now().UTC(),
	}
	d.DetectionID = d.ID.String()
	f.detections[d.ID] = d
	f.events = append(f.events, timeline.KindAdd)
	return &d, nil
}

func (f *fakeSystem) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Detection, error) {
	d, ok := f.detections[id]
	if !ok {
		return nil, ErrNotFound
	}
	d.Width = cmd.Width
	d.Height = cmd.Height
	d.X = cmd.X
	d.Y = cmd.Y
	d.Confidence = cmd.Confidence
	d.ClassID = cmd.ClassID
	f.detections[id] = d
	f.events = append(f.events, timeline.KindEdit)
	return &d, nil
}

func (f *fakeSystem) Delete(ctx context.Context, id uuid.UUID, cmd DeleteCommand) error {
	if _, ok := f.detections[id]; !ok {
		return ErrNotFound
	}
	delete(f.detections, id)
	f.events = append(f.events, timeline.KindDelete)
	return nil
}

func (f *fakeSystem) DeleteAllByInspection(ctx context.Context, number string) error {
	for id, d := range f.detections {
		if d.InspectionNumber == number {
			delete(f.detections, id)
		}
	}
	return nil
}

func testHandler(sys System) *Handler {
	return NewHandler(sys, slog.New(slog.DiscardHandler))
}

func seedDetection(number string) Detection {
	return Detection{
		ID:               uuid.New(),
		InspectionNumber: number,
		Width:            100,
		Height:           50,
		X:                320,
		Y:                240,
		Confidence:       0.87,
		ClassID:          1,
		ClassName:        "loose_joint",
		DetectionID:      "det-1",
		CreatedAt:        time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestHandlerAdd(t *testing.T) {
	sys := newFakeSystem()
	h := testHandler(sys)

	body := `{"width":40,"height":40,"x":10,"y":10,"confidence":0.9,"class_id":2,"class_name":"point_overload","author":"inspector","comment":"missed by the model"}`
	req := httptest.NewRequest("POST", "/inspections/INS-001/detections", strings.NewReader(body))
	req.SetPathValue("number", "INS-001")
	rec := httptest.NewRecorder()

	h.Add(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d; expected %d", rec.Code, http.StatusCreated)
	}

	var d Detection
	if err := json.NewDecoder(rec.Body).Decode(&d); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if d.InspectionNumber != "INS-001" {
		t.Errorf("inspection = %q", d.InspectionNumber)
	}
	if d.ClassName != "point_overload" {
		t.Errorf("class_name = %q", d.ClassName)
	}

	if len(sys.detections) != 1 {
		t.Errorf("stored = %d; expected 1", len(sys.detections))
	}
	if len(sys.events) != 1 || sys.events[0] != timeline.KindAdd {
		t.Errorf("events = %v; expected one %q", sys.events, timeline.KindAdd)
	}
}

func TestHandlerUpdate(t *testing.T) {
	t.Run("overwrites geometry and records one event", func(t *testing.T) {
		existing := seedDetection("INS-001")
		sys := newFakeSystem(existing)
		h := testHandler(sys)

		body := `{"width":120,"height":60,"x":300,"y":200,"confidence":0.95,"class_id":1,"author":"inspector","comment":"tightened box"}`
		req := httptest.NewRequest("PUT", "/detections/"+existing.ID.String(), strings.NewReader(body))
		req.SetPathValue("id", existing.ID.String())
		rec := httptest.NewRecorder()

		h.Update(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; expected %d", rec.Code, http.StatusOK)
		}

		var d Detection
		if err := json.NewDecoder(rec.Body).Decode(&d); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if d.Width != 120 || d.X != 300 {
			t.Errorf("geometry = %vx%v at %v,%v", d.Width, d.Height, d.X, d.Y)
		}
		if d.ClassName != existing.ClassName {
			t.Errorf("class_name changed to %q", d.ClassName)
		}
		if d.DetectionID != existing.DetectionID {
			t.Errorf("detection_id changed to %q", d.DetectionID)
		}

		if len(sys.events) != 1 || sys.events[0] != timeline.KindEdit {
			t.Errorf("events = %v; expected one %q", sys.events, timeline.KindEdit)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		sys := newFakeSystem(seedDetection("INS-001"))
		h := testHandler(sys)

		body := `{"width":1,"height":1,"x":0,"y":0,"confidence":0.5,"class_id":1,"author":"inspector"}`
		req := httptest.NewRequest("PUT", "/detections/"+uuid.NewString(), strings.NewReader(body))
		req.SetPathValue("id", uuid.NewString())
		rec := httptest.NewRecorder()

		h.Update(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d; expected %d", rec.Code, http.StatusNotFound)
		}
		if len(sys.events) != 0 {
			t.Errorf("events = %v; expected none", sys.events)
		}
	})
}

func TestHandlerDelete(t *testing.T) {
	t.Run("removes the detection and records one event", func(t *testing.T) {
		existing := seedDetection("INS-001")
		sys := newFakeSystem(existing)
		h := testHandler(sys)

		body := `{"author":"inspector","comment":"false positive"}`
		req := httptest.NewRequest("DELETE", "/detections/"+existing.ID.String(), strings.NewReader(body))
		req.SetPathValue("id", existing.ID.String())
		rec := httptest.NewRecorder()

		h.Delete(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d; expected %d", rec.Code, http.StatusNoContent)
		}
		if len(sys.detections) != 0 {
			t.Errorf("stored = %d; expected 0", len(sys.detections))
		}
		if len(sys.events) != 1 || sys.events[0] != timeline.KindDelete {
			t.Errorf("events = %v; expected one %q", sys.events, timeline.KindDelete)
		}
	})

	t.Run("unknown id leaves no event", func(t *testing.T) {
		existing := seedDetection("INS-001")
		sys := newFakeSystem(existing)
		h := testHandler(sys)

		req := httptest.NewRequest("DELETE", "/detections/"+uuid.NewString(), strings.NewReader(`{"author":"inspector"}`))
		req.SetPathValue("id", uuid.NewString())
		rec := httptest.NewRecorder()

		h.Delete(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d; expected %d", rec.Code, http.StatusNotFound)
		}
		if len(sys.events) != 0 {
			t.Errorf("events = %v; expected none", sys.events)
		}
		if len(sys.detections) != 1 {
			t.Errorf("stored = %d; expected 1", len(sys.detections))
		}
	})

	t.Run("empty body allowed", func(t *testing.T) {
		existing := seedDetection("INS-001")
		sys := newFakeSystem(existing)
		h := testHandler(sys)

		req := httptest.NewRequest("DELETE", "/detections/"+existing.ID.String(), nil)
		req.SetPathValue("id", existing.ID.String())
		rec := httptest.NewRecorder()

		h.Delete(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d; expected %d", rec.Code, http.StatusNoContent)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		sys := newFakeSystem()
		h := testHandler(sys)

		req := httptest.NewRequest("DELETE", "/detections/not-a-uuid", nil)
		req.SetPathValue("id", "not-a-uuid")
		rec := httptest.NewRecorder()

		h.Delete(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d; expected %d", rec.Code, http.StatusBadRequest)
		}
	})
}
