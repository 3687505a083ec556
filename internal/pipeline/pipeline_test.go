package pipeline

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/scanstation/receipt-ocr/internal/models"
	"github.com/scanstation/receipt-ocr/internal/ocr"
)

type stubDetector struct{}

func (stubDetector) DetectAndCrop(img image.Image) image.Image { return img }

type fakeEngine struct {
	available bool
	results   []ocr.Result
	calls     int
}

func (f *fakeEngine) Available() bool { return f.available }

func (f *fakeEngine) Recognize(ctx context.Context, img image.Image, mode ocr.PageSegMode) (ocr.Result, error) {
	i := f.calls
	f.calls++
	if i >= len(f.results) {
		return ocr.Result{}, nil
	}
	return f.results[i], nil
}

const receiptText = "ACME MART\nCoffee 3.50\nTotal $8.64\n01/02/2024"

func TestProcessEngineUnavailable(t *testing.T) {
	engine := &fakeEngine{available: false}
	proc := NewProcessor(engine, stubDetector{})

	result, err := proc.Process(context.Background(), image.NewRGBA(image.Rect(0, 0, 10, 10)))
	if err != nil {
		t.Fatalf("Process() error = %v, want nil", err)
	}
	if result.Text != "" || len(result.Words) != 0 || result.Confidence != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
	if engine.calls != 0 {
		t.Errorf("engine called %d times, want 0", engine.calls)
	}
}

func TestProcessEndToEnd(t *testing.T) {
	headerWords := []models.RecognizedWord{
		{Text: "ACME", Confidence: 92, Top: 0, Height: 40, Width: 40},
		{Text: "MART", Confidence: 90, Top: 4, Height: 40, Width: 40},
	}
	engine := &fakeEngine{
		available: true,
		results: []ocr.Result{
			// First cascade strategy succeeds; the rest return empty.
			{Text: receiptText},
			{}, {}, {}, {},
			// Word detail pass, then its sparse-result retry.
			{Text: receiptText, Words: headerWords},
			{Words: []models.RecognizedWord{{Text: "Thanks", Confidence: 80, Top: 300, Height: 10, Width: 50}}},
		},
	}
	proc := NewProcessor(engine, stubDetector{})

	result, err := proc.Process(context.Background(), image.NewRGBA(image.Rect(0, 0, 100, 100)))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Text != receiptText {
		t.Errorf("Text = %q, want the recognized receipt", result.Text)
	}
	if len(result.Words) != 3 {
		t.Errorf("got %d words, want 3 (detail pass plus retry)", len(result.Words))
	}
	if result.Fields.Vendor != "ACME MART" {
		t.Errorf("Vendor = %q, want ACME MART", result.Fields.Vendor)
	}
	if result.Fields.Amounts.Total == nil || result.Fields.Amounts.Total.String() != "8.64" {
		t.Errorf("Total = %v, want 8.64", result.Fields.Amounts.Total)
	}
	if result.Fields.Date != "2024-01-02" {
		t.Errorf("Date = %q, want 2024-01-02", result.Fields.Date)
	}
	if result.Confidence <= 0.5 {
		t.Errorf("Confidence = %v, want > 0.5", result.Confidence)
	}
}

func TestProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 20, 20))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	proc := NewProcessor(&fakeEngine{available: true}, stubDetector{})
	result, err := proc.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if result.Text != "" {
		t.Errorf("Text = %q, want empty for a blank image", result.Text)
	}
}

func TestProcessFileMissing(t *testing.T) {
	proc := NewProcessor(&fakeEngine{available: true}, stubDetector{})
	if _, err := proc.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPoolProcessesJob(t *testing.T) {
	engine := &fakeEngine{available: false}
	pool := NewPool(NewProcessor(engine, stubDetector{}), 1)
	defer pool.Close()

	done := make(chan models.ProcessResult, 1)
	ok := pool.Submit(context.Background(), image.NewRGBA(image.Rect(0, 0, 10, 10)),
		func(result models.ProcessResult, err error) {
			if err != nil {
				t.Errorf("callback error = %v", err)
			}
			done <- result
		})
	if !ok {
		t.Fatal("Submit returned false with an idle pool")
	}
	result := <-done
	if result.Text != "" {
		t.Errorf("result.Text = %q, want empty", result.Text)
	}
}
