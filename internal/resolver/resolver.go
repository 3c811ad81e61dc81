package resolver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Common errors.
var (
	ErrNotFound    = errors.New("resolver: object not found")
	ErrServerError = errors.New("resolver: server error")
)

// SpeedOfLight is the speed of light in km/s, used to convert redshifts
// to recessional velocities.
const SpeedOfLight = 299792.458

// defaultBaseURL is the Simbad identifier-query endpoint.
const defaultBaseURL = "http://simbad.u-strasbg.fr/simbad/sim-id"

// coordPattern matches the ICRS J2000 coordinate line in a Simbad ASCII
// response: "Coordinates(ICRS,ep=J2000,eq=2000): HH MM SS.ss  +DD MM SS.s".
var coordPattern = regexp.MustCompile(
	`Coordinates\(ICRS,ep=J2000,eq=2000\): (\d+) (\d+) ([\d.]+)\s+([+-]\d+) (\d+) ([\d.]+)`)

// velocityPrefix marks the "Radial velocity / Redshift / cz" line.
const velocityPrefix = "Radial velocity"

// Options configures the resolver client.
type Options struct {
	// BaseURL is the name-resolution endpoint.
	// Default: the Simbad sim-id service.
	BaseURL string

	// Timeout for individual requests.
	// Default: 30s
	Timeout time.Duration
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		BaseURL: defaultBaseURL,
		Timeout: 30 * time.Second,
	}
}

// Result holds the coordinates resolved for an object name, plus the
// recessional velocity when the response carries one and it was asked for.
type Result struct {
	RA  float64 // decimal degrees
	Dec float64 // decimal degrees

	// Velocity is the recessional velocity in km/s. Only meaningful when
	// HasVelocity is true.
	Velocity    float64
	HasVelocity bool
}

// Client resolves object names to coordinates via a Simbad-style service.
type Client struct {
	client  *http.Client
	baseURL string
	log     zerolog.Logger
}

// NewClient creates a resolver client with the given options.
func NewClient(opts Options, log zerolog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	return &Client{
		client:  &http.Client{Timeout: opts.Timeout},
		baseURL: opts.BaseURL,
		log:     log,
	}
}

// Resolve looks up an object name and returns its ICRS J2000 coordinates in
// decimal degrees. When wantVelocity is set it additionally scans the
// response for a radial-velocity line; a missing or unparsable velocity is
// not an error, the returned Result simply has HasVelocity false.
//
// Each lookup is a single request. There is no retry: a failed or
// unresolvable name abandons the object, it does not stall the batch.
func (c *Client) Resolve(ctx context.Context, name string, wantVelocity bool) (Result, error) {
	q := url.Values{}
	q.Set("output.format", "ASCII")
	q.Set("Ident", name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("resolve %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return Result{}, fmt.Errorf("resolve %q: %w: %d %s", name, ErrServerError, resp.StatusCode, resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("resolve %q: unexpected status code: %d", name, resp.StatusCode)
	}

	var (
		res        Result
		foundCoord bool
	)

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		// First coordinate match wins, later lines are ignored.
		if !foundCoord {
			if ra, dec, ok := parseCoordinateLine(line); ok {
				res.RA, res.Dec = ra, dec
				foundCoord = true
				if !wantVelocity {
					break
				}
				continue
			}
		}

		if wantVelocity && !res.HasVelocity && strings.HasPrefix(line, velocityPrefix) {
			if v, ok := parseVelocityLine(line); ok {
				res.Velocity = v
				res.HasVelocity = true
			}
		}

		if foundCoord && res.HasVelocity {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("resolve %q: read response: %w", name, err)
	}

	if !foundCoord {
		return Result{}, fmt.Errorf("resolve %q: %w", name, ErrNotFound)
	}

	c.log.Debug().
		Str("object", name).
		Float64("ra", res.RA).
		Float64("dec", res.Dec).
		Bool("velocity", res.HasVelocity).
		Msg("resolved")

	return res, nil
}

// parseCoordinateLine extracts decimal-degree coordinates from a Simbad
// coordinate line. Returns ok=false when the line does not match.
func parseCoordinateLine(line string) (ra, dec float64, ok bool) {
	m := coordPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}

	rah, _ := strconv.ParseFloat(m[1], 64)
	ram, _ := strconv.ParseFloat(m[2], 64)
	ras, _ := strconv.ParseFloat(m[3], 64)
	decd, _ := strconv.ParseFloat(m[4], 64)
	decm, _ := strconv.ParseFloat(m[5], 64)
	decs, _ := strconv.ParseFloat(m[6], 64)

	// The degree token carries the sign, "-00" included.
	sign := 1.0
	if strings.HasPrefix(m[4], "-") {
		sign = -1.0
	}

	return RAFromSexagesimal(rah, ram, ras), DecFromSexagesimal(sign, math.Abs(decd), decm, decs), true
}

// parseVelocityLine extracts a recessional velocity in km/s from a
// "Radial velocity / Redshift / cz" line. A "V(km/s)" value is taken
// directly; a redshift "z" value is converted via v = c*z.
func parseVelocityLine(line string) (float64, bool) {
	i := strings.Index(line, ":")
	if i < 0 {
		return 0, false
	}

	fields := strings.Fields(line[i+1:])
	for j, f := range fields {
		if j+1 >= len(fields) {
			break
		}
		if strings.HasPrefix(f, "V(km/s)") {
			if v, err := strconv.ParseFloat(fields[j+1], 64); err == nil {
				return v, true
			}
			return 0, false
		}
		if f == "z" || strings.HasPrefix(f, "z(") {
			if z, err := strconv.ParseFloat(fields[j+1], 64); err == nil {
				return z * SpeedOfLight, true
			}
			return 0, false
		}
	}

	return 0, false
}

// RAFromSexagesimal converts a right ascension in hours, minutes and seconds
// to decimal degrees.
func RAFromSexagesimal(h, m, s float64) float64 {
	return 15 * (h + m/60 + s/3600)
}

// DecFromSexagesimal converts a declination in degrees, arcminutes and
// arcseconds to decimal degrees. sign must be +1 or -1 and governs the whole
// value; d is the absolute degree component.
func DecFromSexagesimal(sign, d, m, s float64) float64 {
	return sign * (d + m/60 + s/3600)
}
