package history

import (
	"encoding/json"
	"time"

	"github.com/helpware/faqdex/internal/domain"
)

// recordDTO is the stored JSON shape of one interaction.
type recordDTO struct {
	ID              string    `json:"id"`
	Input           string    `json:"input"`
	NormalizedInput string    `json:"normalized_input,omitempty"`
	Reply           string    `json:"reply"`
	Matched         bool      `json:"matched"`
	Similarity      float64   `json:"similarity"`
	CreatedAt       time.Time `json:"created_at"`
}

// encodeRecord serializes a domain record for list storage.
func encodeRecord(rec domain.Record) ([]byte, error) {
	return json.Marshal(recordDTO{
		ID:              rec.ID,
		Input:           rec.Input,
		NormalizedInput: rec.NormalizedInput,
		Reply:           rec.Reply,
		Matched:         rec.Matched,
		Similarity:      rec.Similarity,
		CreatedAt:       rec.CreatedAt,
	})
}

// decodeRecord parses a stored payload back into a domain record.
func decodeRecord(data []byte) (domain.Record, error) {
	var dto recordDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.Record{}, err
	}
	return domain.Record{
		ID:              dto.ID,
		Input:           dto.Input,
		NormalizedInput: dto.NormalizedInput,
		Reply:           dto.Reply,
		Matched:         dto.Matched,
		Similarity:      dto.Similarity,
		CreatedAt:       dto.CreatedAt,
	}, nil
}
