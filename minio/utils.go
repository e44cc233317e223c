package minio

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
)

// MetadataReporterID is the user metadata key carrying the reporter GUID.
const MetadataReporterID = "Reporter-Id"

// SendBatch uploads the payload as a new object under
// <prefix>/<yyyy>/<mm>/<dd>/<reporter>-<seq>.
func (m *MinioClient) SendBatch(ctx context.Context, payload []byte) error {
	start := time.Now()

	m.mu.RLock()
	closed := m.closed
	reporterID, contentType, contentEncoding := m.reporterID, m.contentType, m.contentEncoding
	m.mu.RUnlock()

	key := m.objectKey(start, reporterID)
	if closed {
		m.observeOperation("send", m.cfg.Bucket, key, time.Since(start), ErrClientClosed, 0, nil)
		return ErrClientClosed
	}

	opts := minio.PutObjectOptions{
		ContentType:     contentType,
		ContentEncoding: contentEncoding,
	}
	if reporterID != "" {
		opts.UserMetadata = map[string]string{MetadataReporterID: reporterID}
	}

	info, err := m.store.PutObject(ctx, m.cfg.Bucket, key, bytes.NewReader(payload), int64(len(payload)), opts)
	if err != nil {
		err = m.wrapError(err)
	}
	m.observeOperation("send", m.cfg.Bucket, key, time.Since(start), err, info.Size, nil)
	return err
}

// Close marks the client closed. The underlying HTTP client needs no teardown.
func (m *MinioClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MinioClient) objectKey(now time.Time, reporter string) string {
	if reporter == "" {
		reporter = "reporter"
	}
	seq := m.seq.Add(1)
	return path.Join(m.cfg.Prefix, now.UTC().Format("2006/01/02"), fmt.Sprintf("%s-%010d", reporter, seq))
}

func (m *MinioClient) wrapError(err error) error {
	translated := m.TranslateError(err)
	if translated == err {
		return err
	}
	return fmt.Errorf("%w: %v", translated, err)
}
