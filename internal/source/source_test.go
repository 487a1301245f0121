package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const reviewsCSV = `id,Feedback,rating
1,"Great service, fast luggage",5
2,,3
3,"Seat was broken",1
4,"Lovely crew",4
`

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected []string
	}{
		{"all rows", 0, []string{"Great service, fast luggage", "Seat was broken", "Lovely crew"}},
		{"limit skips blanks", 2, []string{"Great service, fast luggage", "Seat was broken"}},
		{"limit larger than input", 20, []string{"Great service, fast luggage", "Seat was broken", "Lovely crew"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCSV(strings.NewReader(reviewsCSV), "feedback", tt.limit)
			if err != nil {
				t.Fatalf("ReadCSV() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ReadCSV() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReadCSV_MissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("id,review\n1,ok\n"), "feedback", 0)
	if !errors.Is(err, ErrNoFeedbackColumn) {
		t.Errorf("ReadCSV() error = %v, want ErrNoFeedbackColumn", err)
	}

	_, err = ReadCSV(strings.NewReader(""), "feedback", 0)
	if !errors.Is(err, ErrNoFeedbackColumn) {
		t.Errorf("ReadCSV(empty) error = %v, want ErrNoFeedbackColumn", err)
	}
}

func TestReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	if err := os.WriteFile(path, []byte(reviewsCSV), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := New(path, "", 1).Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Great service, fast luggage"}) {
		t.Errorf("Read() = %v", got)
	}
}

func TestReader_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reviews.csv" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(reviewsCSV))
	}))
	defer srv.Close()

	got, err := New(srv.URL+"/reviews.csv", "feedback", 0).Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Read() returned %d rows, want 3", len(got))
	}

	_, err = New(srv.URL+"/missing.csv", "feedback", 0).Read(context.Background())
	if err == nil {
		t.Error("Read() expected error for 404")
	}
}

func TestReader_NoLocation(t *testing.T) {
	if _, err := New("", "", 0).Read(context.Background()); err == nil {
		t.Error("Read() expected error with no location")
	}
}
