package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/ghnotify/ghnotify/internal/model"
)

// JSONFormatter renders notifications as JSON.
type JSONFormatter struct {
	Pretty bool
}

// jsonEnvelope wraps the items with fetch metadata.
type jsonEnvelope struct {
	FetchedAt     time.Time            `json:"fetched_at"`
	Count         int                  `json:"count"`
	Notifications []model.Notification `json:"notifications"`
}

// Format outputs notifications as a JSON document.
func (f *JSONFormatter) Format(items []model.Notification, fetchedAt time.Time, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(jsonEnvelope{
		FetchedAt:     fetchedAt,
		Count:         len(items),
		Notifications: items,
	})
}
