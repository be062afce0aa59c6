package httpx

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/target/boxoffice/internal/service"
)

// PaginationData contains pagination information for list views.
type PaginationData struct {
	Page       int
	PageSize   int
	HasPrev    bool
	HasNext    bool
	StartIndex int
	EndIndex   int
	TotalCount int
	BasePath   string
}

// pageData copies the counters of a service page.
func pageData[T any](basePath string, p service.Page[T]) PaginationData {
	return PaginationData{
		Page:       p.Page,
		PageSize:   p.PageSize,
		HasPrev:    p.HasPrev,
		HasNext:    p.HasNext,
		StartIndex: p.StartIndex,
		EndIndex:   p.EndIndex,
		TotalCount: p.TotalCount,
		BasePath:   basePath,
	}
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
	r    *http.Request
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: basePageData(r, meta), r: r}
}

// WithPagination adds pagination data and builds PrevURL/NextURL.
func (b *TemplateDataBuilder) WithPagination(opts PaginationData) *TemplateDataBuilder {
	applyPagination(b.data, b.r.URL.Query(), opts)
	return b
}

func applyPagination(data map[string]any, q url.Values, opts PaginationData) {
	data["Page"] = opts.Page
	data["PageSize"] = opts.PageSize
	data["HasPrev"] = opts.HasPrev
	data["HasNext"] = opts.HasNext
	data["StartIndex"] = opts.StartIndex
	data["EndIndex"] = opts.EndIndex
	data["TotalCount"] = opts.TotalCount
	if opts.HasPrev {
		data["PrevURL"] = buildPageURL(opts.BasePath, q, opts.Page-1, opts.PageSize)
	}
	if opts.HasNext {
		data["NextURL"] = buildPageURL(opts.BasePath, q, opts.Page+1, opts.PageSize)
	}
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}

// buildPageURL returns basePath with page and page_size set, keeping other non-blank
// query params and dropping htmx ones.
func buildPageURL(basePath string, q url.Values, page, pageSize int) string {
	qq := make(url.Values, len(q))
	for k, v := range q {
		if strings.HasPrefix(k, "hx-") || strings.HasPrefix(k, "hx_") {
			continue
		}
		kept := make([]string, 0, len(v))
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				kept = append(kept, s)
			}
		}
		if len(kept) > 0 {
			qq[k] = kept
		}
	}
	qq.Set("page", strconv.Itoa(page))
	qq.Set("page_size", strconv.Itoa(pageSize))
	return basePath + "?" + qq.Encode()
}
