package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"foodshop/internal/model"
	"foodshop/internal/repository"
)

// ==================== 测试辅助 ====================

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
	gifBytes  = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00!\xf9\x04\x01\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00\xff\xd9")
)

func newTestStore(t *testing.T) repository.RecordStore {
	t.Helper()
	store, err := repository.NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return store
}

// fakeReleaser 记录被回收的图片
type fakeReleaser struct {
	mu       sync.Mutex
	released []string
}

func (f *fakeReleaser) Release(_ context.Context, urls []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, urls...)
}

func (f *fakeReleaser) Released() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.released...)
}

// fakeNotifier 同步记录通知
type fakeNotifier struct {
	mu       sync.Mutex
	invoices []model.Invoice
}

func (f *fakeNotifier) NotifyOrder(_ model.Product, invoice model.Invoice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invoices = append(f.invoices, invoice)
}

// fakeMailer 可配置失败或 panic 的发送器
type fakeMailer struct {
	mu       sync.Mutex
	sent     []Message
	failTo   map[string]bool
	panicTo  map[string]bool
	attempts int
}

func (m *fakeMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	m.attempts++
	fail := m.failTo[msg.To]
	boom := m.panicTo[msg.To]
	if !fail && !boom {
		m.sent = append(m.sent, msg)
	}
	m.mu.Unlock()

	if boom {
		panic("smtp exploded")
	}
	if fail {
		return errors.New("connection refused")
	}
	return nil
}

func (m *fakeMailer) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

func (m *fakeMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}

type testUpload struct {
	name        string
	contentType string
	data        []byte
}

// buildFileHeaders 构造 multipart 文件头
func buildFileHeaders(t *testing.T, field string, files ...testUpload) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, f.name))
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field]
}

func intPtr(v int) *int { return &v }
