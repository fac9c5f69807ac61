package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/wolfman30/leadgen-site/internal/leads"
	"github.com/wolfman30/leadgen-site/pkg/logging"
)

// S3API is the subset of the S3 client used by Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Store archives anonymized lead records to S3.
type Store struct {
	bucket   string
	s3Client S3API
	logger   *logging.Logger
	now      func() time.Time
}

// NewStore creates an archive Store. If bucket is empty, all operations are no-ops.
func NewStore(s3Client S3API, bucket string, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{bucket: bucket, s3Client: s3Client, logger: logger, now: time.Now}
}

// Enabled returns true if archival is configured (bucket is set).
func (s *Store) Enabled() bool {
	return s != nil && s.bucket != "" && s.s3Client != nil
}

// ArchiveLead implements leads.Archiver.
func (s *Store) ArchiveLead(ctx context.Context, lead *leads.Lead) error {
	if !s.Enabled() || lead == nil {
		return nil
	}
	return s.archive(ctx, &LeadRecord{
		Version:    RecordVersion,
		LeadID:     lead.ID,
		SessionID:  lead.SessionID,
		Tier:       lead.Tier,
		Company:    lead.Company,
		EmailHash:  HashEmail(lead.Email),
		Answers:    ScrubAnswers(lead.Answers),
		CapturedAt: lead.CreatedAt,
		ArchivedAt: s.now().UTC(),
	})
}

func (s *Store) archive(ctx context.Context, record *LeadRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("archive: marshal record: %w", err)
	}

	day := recordDay(record.CapturedAt, record.ArchivedAt)
	s3Key := recordKey(record.LeadID, day)

	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s3Key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("archive: s3 put %s: %w", s3Key, err)
	}

	s.logger.Info("archived lead to S3", "lead_id", record.LeadID, "s3_key", s3Key, "tier", record.Tier)

	entry := ManifestEntry{
		LeadID:      record.LeadID,
		S3Key:       s3Key,
		Tier:        record.Tier,
		CompanySize: record.Answers["company_size"],
		Timeline:    record.Answers["timeline"],
		ArchivedAt:  record.ArchivedAt.Format(time.RFC3339),
	}
	if err := s.appendManifest(ctx, manifestKeyFor(day), entry); err != nil {
		// the record itself is already stored
		s.logger.Warn("failed to append manifest", "error", err, "lead_id", record.LeadID)
	}
	return nil
}

// AppendManifest appends a JSONL line to the monthly manifest file.
// S3 has no append, so this is a read-modify-write.
func (s *Store) AppendManifest(ctx context.Context, entry ManifestEntry) error {
	if !s.Enabled() {
		return nil
	}
	return s.appendManifest(ctx, manifestKeyFor(s.now().UTC()), entry)
}

func (s *Store) appendManifest(ctx context.Context, manifestKey string, entry ManifestEntry) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("archive: marshal manifest entry: %w", err)
	}

	existing, found, err := s.readManifest(ctx, manifestKey)
	if err != nil {
		return err
	}
	if !found {
		s.logger.Debug("manifest not found, creating new", "key", manifestKey)
	}

	var buf bytes.Buffer
	if len(existing) > 0 {
		buf.Write(existing)
		if existing[len(existing)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	buf.Write(line)
	buf.WriteByte('\n')

	return s.putManifest(ctx, manifestKey, buf.Bytes())
}

// EraseSession implements leads.SessionEraser. It deletes the archived
// records of the captured leads and drops their manifest lines.
func (s *Store) EraseSession(ctx context.Context, sessionID string, captured []*leads.Lead) error {
	if !s.Enabled() || len(captured) == 0 {
		return nil
	}

	byManifest := map[string]map[string]bool{}
	for _, lead := range captured {
		if lead == nil {
			continue
		}
		day := recordDay(lead.CreatedAt, s.now().UTC())
		key := recordKey(lead.ID, day)
		if _, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		}); err != nil && !isNotFound(err) {
			return fmt.Errorf("archive: s3 delete %s: %w", key, err)
		}

		mk := manifestKeyFor(day)
		if byManifest[mk] == nil {
			byManifest[mk] = map[string]bool{}
		}
		byManifest[mk][lead.ID] = true
	}

	for mk, ids := range byManifest {
		if err := s.dropManifestEntries(ctx, mk, ids); err != nil {
			return err
		}
	}
	s.logger.Info("erased archived leads", "session_id", sessionID, "leads", len(captured))
	return nil
}

func (s *Store) dropManifestEntries(ctx context.Context, manifestKey string, leadIDs map[string]bool) error {
	existing, found, err := s.readManifest(ctx, manifestKey)
	if err != nil || !found {
		return err
	}

	var (
		buf     bytes.Buffer
		dropped int
	)
	for _, line := range bytes.Split(existing, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var entry ManifestEntry
		if err := json.Unmarshal(line, &entry); err == nil && leadIDs[entry.LeadID] {
			dropped++
			continue
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	if dropped == 0 {
		return nil
	}
	return s.putManifest(ctx, manifestKey, buf.Bytes())
}

func (s *Store) readManifest(ctx context.Context, manifestKey string) ([]byte, bool, error) {
	getResp, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(manifestKey),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("archive: s3 get manifest: %w", err)
	}
	defer getResp.Body.Close()

	data, err := io.ReadAll(getResp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("archive: read manifest: %w", err)
	}
	return data, true, nil
}

func (s *Store) putManifest(ctx context.Context, manifestKey string, data []byte) error {
	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(manifestKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		return fmt.Errorf("archive: s3 put manifest: %w", err)
	}
	return nil
}

// recordDay picks the UTC date a record is filed under: the capture time when
// known, otherwise the fallback.
func recordDay(captured, fallback time.Time) time.Time {
	if captured.IsZero() {
		return fallback.UTC()
	}
	return captured.UTC()
}

func recordKey(leadID string, day time.Time) string {
	return fmt.Sprintf("leads/v1/by-date/%d/%02d/%02d/%s.json", day.Year(), day.Month(), day.Day(), leadID)
}

func manifestKeyFor(t time.Time) string {
	return fmt.Sprintf("leads/v1/manifests/%d-%02d.jsonl", t.Year(), t.Month())
}

func isNotFound(err error) bool {
	var nsk *s3types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "NoSuchKey") || strings.Contains(msg, "StatusCode: 404")
}

var (
	_ leads.Archiver      = (*Store)(nil)
	_ leads.SessionEraser = (*Store)(nil)
)
