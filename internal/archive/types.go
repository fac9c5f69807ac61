package archive

import "time"

// RecordVersion tags the layout of archived lead records.
const RecordVersion = "1.0"

// LeadRecord is the anonymized copy of a captured application written to S3
// for funnel reporting.
type LeadRecord struct {
	Version    string            `json:"version"`
	LeadID     string            `json:"lead_id"`
	SessionID  string            `json:"session_id"`
	Tier       string            `json:"tier"`
	Company    string            `json:"company,omitempty"`
	EmailHash  string            `json:"email_hash"` // sha256 of lowercased email
	Answers    map[string]string `json:"answers"`
	CapturedAt time.Time         `json:"captured_at"`
	ArchivedAt time.Time         `json:"archived_at"`
}

// ManifestEntry is one JSONL line in the monthly manifest file.
type ManifestEntry struct {
	LeadID      string `json:"lead_id"`
	S3Key       string `json:"s3_key"`
	Tier        string `json:"tier"`
	CompanySize string `json:"company_size,omitempty"`
	Timeline    string `json:"timeline,omitempty"`
	ArchivedAt  string `json:"archived_at"`
}
