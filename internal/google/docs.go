package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"scriptum/internal/textract"
)

// ErrDocumentNotFound is returned when Google Docs has no document with the requested id.
var ErrDocumentNotFound = errors.New("google document not found")

var tracer = otel.Tracer("scriptum/internal/google")

// Docs reads Google Docs documents and flattens them to plain text.
// Extracted text is cached per document id until Flush.
type Docs struct {
	src     ClientSource
	appName string
	opts    []option.ClientOption
	cache   *cache.Cache
	log     *zap.Logger
}

// NewDocs returns a Docs reader whose results live for ttl.
func NewDocs(src ClientSource, appName string, ttl time.Duration, log *zap.Logger, opts ...option.ClientOption) *Docs {
	return &Docs{
		src:     src,
		appName: appName,
		opts:    opts,
		cache:   cache.New(ttl, 2*ttl),
		log:     log.Named("google.docs"),
	}
}

// Text returns the text of the document in reading order.
func (d *Docs) Text(ctx context.Context, documentID string) (string, error) {
	ctx, span := tracer.Start(ctx, "google.docs.text",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("document.id", documentID)),
	)
	defer span.End()

	if v, ok := d.cache.Get(documentID); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return v.(string), nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	text, err := d.fetch(ctx, documentID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return "", err
	}

	d.cache.Set(documentID, text, cache.DefaultExpiration)
	d.log.Debug("document text extracted", zap.String("document_id", documentID), zap.Int("length", len(text)))
	return text, nil
}

// Flush drops every cached text. It is hooked to Auth.OnLogout so a signed-out
// account serves nothing from the cache.
func (d *Docs) Flush() {
	d.cache.Flush()
}

func (d *Docs) fetch(ctx context.Context, documentID string) (string, error) {
	hc, err := d.src.Client(ctx)
	if err != nil {
		return "", err
	}

	opts := append([]option.ClientOption{option.WithHTTPClient(hc), option.WithUserAgent(d.appName)}, d.opts...)
	srv, err := docs.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("docs client: %w", err)
	}

	doc, err := srv.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
			return "", ErrDocumentNotFound
		}
		return "", fmt.Errorf("get document: %w", err)
	}
	return textract.Text(textract.FromDocs(doc.Body)), nil
}
