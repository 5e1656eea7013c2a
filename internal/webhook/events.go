// Package webhook handles signed catalog-upload notifications.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Header names carried by notifications.
const (
	SignatureHeader = "X-Outfitscope-Signature-256"
	EventHeader     = "X-Outfitscope-Event"
)

// Event types.
const (
	EventCatalogUploaded = "catalog.uploaded"
	EventPing            = "ping"
)

// VerifySignature validates the signature header against the payload.
func VerifySignature(payload []byte, signature string, secret []byte) error {
	if !strings.HasPrefix(signature, "sha256=") {
		return fmt.Errorf("invalid signature format")
	}
	sig, err := hex.DecodeString(signature[7:])
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := mac.Sum(nil)

	if !hmac.Equal(sig, expected) {
		return fmt.Errorf("signature mismatch")
	}
	return nil
}

// Sign returns the signature header value for payload. Senders and tests use it.
func Sign(payload, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// CatalogUploadedEvent announces that a catalog export was written to blob storage.
type CatalogUploadedEvent struct {
	CatalogID  string    `json:"catalog_id"`
	Owner      string    `json:"owner,omitempty"`
	StorageRef string    `json:"storage_ref,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// PingEvent is sent when a notification endpoint is registered.
type PingEvent struct {
	Zen string `json:"zen,omitempty"`
}

// ParseEvent parses a notification payload based on the event type.
func ParseEvent(eventType string, payload []byte) (interface{}, error) {
	switch eventType {
	case EventCatalogUploaded:
		var e CatalogUploadedEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("parse %s event: %w", eventType, err)
		}
		if e.CatalogID == "" {
			return nil, fmt.Errorf("parse %s event: missing catalog_id", eventType)
		}
		return &e, nil
	case EventPing:
		var e PingEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("parse ping event: %w", err)
		}
		return &e, nil
	default:
		return nil, fmt.Errorf("unsupported event type: %s", eventType)
	}
}
