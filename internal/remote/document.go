package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

// recordDocument is the wire schema of the shared record collection. Field
// names match the original collection documents; date is epoch milliseconds.
// Required fields are pointers so a missing field is distinguishable from a
// zero value on decode. manualSleepEntry is optional — documents written by
// older clients omit it and default to false.
type recordDocument struct {
	ID               string   `json:"id"`
	Date             *int64   `json:"date"`
	Steps            *int64   `json:"steps"`
	Distance         *float64 `json:"distance"`
	Sleep            *float64 `json:"sleep"`
	FlightsClimbed   *int64   `json:"flightsClimbed"`
	Mood             *int64   `json:"mood"`
	UserID           *string  `json:"userId"`
	UserName         *string  `json:"userName"`
	ManualSleepEntry bool     `json:"manualSleepEntry"`
}

// Codec converts records to and from remote documents, optionally encrypting
// them at rest. A nil encryptor means plaintext JSON. Decoding encrypted
// documents requires an unlocked DecryptionContext (see Unlock).
type Codec struct {
	encryptor tracker.Encryptor
	decrypter tracker.DecryptionContext
}

// NewCodec creates a plaintext codec.
func NewCodec() *Codec {
	return &Codec{}
}

// NewEncryptedCodec creates a codec that encrypts documents with enc on
// encode. Decoding requires Unlock first.
func NewEncryptedCodec(enc tracker.Encryptor) *Codec {
	return &Codec{encryptor: enc}
}

// Encrypted reports whether documents produced by this codec are encrypted.
func (c *Codec) Encrypted() bool {
	return c.encryptor != nil
}

// Unlock provides the decryption context needed to decode encrypted
// documents for the rest of the session.
func (c *Codec) Unlock(dc tracker.DecryptionContext) {
	c.decrypter = dc
}

// Encode serializes a record into its remote document form.
func (c *Codec) Encode(record *tracker.DailyRecord) ([]byte, error) {
	doc := recordDocument{
		ID:               record.ID,
		Date:             ptr(record.Date.UnixMilli()),
		Steps:            ptr(record.Steps),
		Distance:         ptr(record.DistanceKM),
		Sleep:            ptr(record.SleepHours),
		FlightsClimbed:   ptr(record.FlightsClimbed),
		Mood:             ptr(int64(record.Mood)),
		UserID:           ptr(record.DeviceID),
		UserName:         ptr(record.OwnerName),
		ManualSleepEntry: record.ManualSleepEntry,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	if c.encryptor != nil {
		var buf bytes.Buffer
		if err := c.encryptor.Encrypt(bytes.NewReader(data), &buf); err != nil {
			return nil, fmt.Errorf("encrypting document: %w", err)
		}
		data = buf.Bytes()
	}

	return data, nil
}

// Decode parses a remote document into a record. A document missing a
// required field, mistyping one, or carrying out-of-range values yields a
// *tracker.ValidationError; pull loops skip those and continue the batch.
func (c *Codec) Decode(data []byte) (*tracker.DailyRecord, error) {
	if c.encryptor != nil {
		if c.decrypter == nil {
			return nil, fmt.Errorf("remote encryption configured but not unlocked")
		}
		var buf bytes.Buffer
		if err := c.decrypter.Decrypt(bytes.NewReader(data), &buf); err != nil {
			return nil, &tracker.ValidationError{Field: "document", Reason: fmt.Sprintf("decryption failed: %v", err)}
		}
		data = buf.Bytes()
	}

	var doc recordDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &tracker.ValidationError{Field: "document", Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}

	switch {
	case doc.ID == "":
		return nil, &tracker.ValidationError{Field: "id", Reason: "missing"}
	case doc.Date == nil:
		return nil, &tracker.ValidationError{Field: "date", Reason: "missing"}
	case doc.Steps == nil:
		return nil, &tracker.ValidationError{Field: "steps", Reason: "missing"}
	case doc.Distance == nil:
		return nil, &tracker.ValidationError{Field: "distance", Reason: "missing"}
	case doc.Sleep == nil:
		return nil, &tracker.ValidationError{Field: "sleep", Reason: "missing"}
	case doc.FlightsClimbed == nil:
		return nil, &tracker.ValidationError{Field: "flightsClimbed", Reason: "missing"}
	case doc.Mood == nil:
		return nil, &tracker.ValidationError{Field: "mood", Reason: "missing"}
	case doc.UserID == nil:
		return nil, &tracker.ValidationError{Field: "userId", Reason: "missing"}
	case doc.UserName == nil:
		return nil, &tracker.ValidationError{Field: "userName", Reason: "missing"}
	}

	record := &tracker.DailyRecord{
		ID:               doc.ID,
		Date:             time.UnixMilli(*doc.Date),
		Steps:            *doc.Steps,
		DistanceKM:       *doc.Distance,
		SleepHours:       *doc.Sleep,
		FlightsClimbed:   *doc.FlightsClimbed,
		Mood:             int(*doc.Mood),
		DeviceID:         *doc.UserID,
		OwnerName:        *doc.UserName,
		ManualSleepEntry: doc.ManualSleepEntry,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}

func ptr[T any](v T) *T { return &v }
