package roomname

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/imtaco/interview-lobby/internal/errors"
	"github.com/imtaco/interview-lobby/rooms"
)

const (
	DefaultBaseURL = "https://concretio.daily.co/"
	MaxLength      = 100

	titleRequired = "Room Name Required"
	titleInvalid  = "Invalid Room Name"
)

var (
	schemePattern  = regexp.MustCompile(`^https?://`)
	charsetPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Codec turns user input (bare names or full room links) into room names and
// back into links on the configured provider subdomain.
type Codec struct {
	baseURL     string
	hostPattern *regexp.Regexp
}

func NewCodec(baseURL string) (*Codec, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return nil, errors.Newf(rooms.ErrConfiguration, "invalid room base url %q", baseURL)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Codec{
		baseURL:     baseURL,
		hostPattern: regexp.MustCompile(`^[^/]+\.` + regexp.QuoteMeta(providerDomain(u.Hostname())) + `/`),
	}, nil
}

// providerDomain drops the team label: concretio.daily.co -> daily.co.
func providerDomain(host string) string {
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return host
	}
	return strings.Join(labels[1:], ".")
}

// Normalize extracts the room name from a name or link and validates it.
func (c *Codec) Normalize(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", rooms.NewFlowError(rooms.ErrValidation, titleRequired, "Please enter a room name or URL.")
	}

	s = schemePattern.ReplaceAllString(s, "")
	s = c.hostPattern.ReplaceAllString(s, "")
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "/")
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[i+1:]
	}

	switch {
	case s == "":
		return "", rooms.NewFlowError(rooms.ErrValidation, titleRequired, "Please enter a room name or URL.")
	case len(s) > MaxLength:
		return "", rooms.NewFlowError(rooms.ErrValidation, titleInvalid, "Room names can be at most 100 characters long.")
	case !charsetPattern.MatchString(s):
		return "", rooms.NewFlowError(rooms.ErrValidation, titleInvalid,
			"Room names can only contain letters, numbers, hyphens, and underscores.")
	}
	return s, nil
}

func (c *Codec) CanonicalURL(name string) string {
	return c.baseURL + name
}

func (c *Codec) BaseURL() string {
	return c.baseURL
}
