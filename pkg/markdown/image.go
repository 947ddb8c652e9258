package markdown

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoders for DecodeConfig
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/vango-dev/rsc/pkg/vdom"
)

// ImageWidth is the display width of post images.
const ImageWidth = 400

// Size is an image's intrinsic size in pixels.
type Size struct {
	Width  int
	Height int
}

// Prober reports the size of the image at src.
type Prober interface {
	Probe(ctx context.Context, src string) (Size, error)
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context, src string) (Size, error)

// Probe implements Prober.
func (f ProberFunc) Probe(ctx context.Context, src string) (Size, error) {
	return f(ctx, src)
}

// HTTPProber fetches images over HTTP and decodes only their header.
type HTTPProber struct {
	client *http.Client
	// MaxBytes bounds how much of the body is read while decoding.
	MaxBytes int64
}

// NewHTTPProber creates a prober using client, or http.DefaultClient when
// nil.
func NewHTTPProber(client *http.Client) *HTTPProber {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProber{client: client, MaxBytes: 1 << 20}
}

// Probe implements Prober. Only absolute http and https URLs are probed.
func (p *HTTPProber) Probe(ctx context.Context, src string) (Size, error) {
	u, err := url.Parse(src)
	if err != nil {
		return Size{}, fmt.Errorf("markdown: probe %q: %w", src, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Size{}, fmt.Errorf("markdown: probe %q: not an http url", src)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Size{}, fmt.Errorf("markdown: probe %q: %w", src, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return Size{}, fmt.Errorf("markdown: probe %q: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Size{}, fmt.Errorf("markdown: probe %q: status %d", src, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if p.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, p.MaxBytes)
	}
	cfg, _, err := image.DecodeConfig(body)
	if err != nil {
		return Size{}, fmt.Errorf("markdown: probe %q: %w", src, err)
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}

// Image is the component markdown images resolve through. It renders a
// figure with the image at ImageWidth and a caption of its intrinsic size.
// When probing fails the caption values are left empty.
type Image struct {
	Prober Prober
	Logger *slog.Logger
}

// Name implements vdom.Component.
func (*Image) Name() string {
	return "Image"
}

// Render implements vdom.Component.
func (c *Image) Render(ctx context.Context, props vdom.Mapping) (vdom.Node, error) {
	src, _ := props.String("src")
	alt, _ := props.String("alt")

	width, height := vdom.Node(vdom.Null), vdom.Node(vdom.Null)
	size, err := c.probe(ctx, src)
	switch {
	case err == nil:
		width, height = vdom.Value(size.Width), vdom.Value(size.Height)
	case errors.Is(err, context.Canceled):
		return nil, err
	default:
		c.logger().Warn("image probe failed", "src", src, "error", err)
	}

	img := []any{vdom.Src(src), vdom.Width(ImageWidth)}
	if alt != "" {
		img = append(img, vdom.Alt(alt))
	}
	return vdom.Figure(
		vdom.Style("marginLeft", 0, "marginRight", 0),
		vdom.Img(img...),
		vdom.Figcaption("Width: ", width, ", Height: ", height),
	), nil
}

func (c *Image) probe(ctx context.Context, src string) (Size, error) {
	if c.Prober == nil {
		return Size{}, errors.New("markdown: no prober")
	}
	if src == "" {
		return Size{}, errors.New("markdown: image without src")
	}
	return c.Prober.Probe(ctx, src)
}

func (c *Image) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
