package model

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
)

const (
	// DefaultModelURL hosts the UDPipe 1 models of UD 2.5.
	DefaultModelURL = "https://lindat.mff.cuni.cz/repository/xmlui/bitstream/handle/11234/1-3131"

	// DefaultServiceURL is the UDPipe 2 REST service.
	DefaultServiceURL = "https://lindat.mff.cuni.cz/services/udpipe/api"
)

// HTTPFetcher downloads model files from {BaseURL}/{model file}.
type HTTPFetcher struct {
	BaseURL string
	Release string
	Client  *http.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Release: DefaultRelease,
		Client:  http.DefaultClient,
	}
}

func (f *HTTPFetcher) AssetName(m Model) string {
	return m.File(f.Release)
}

func (f *HTTPFetcher) Fetch(ctx context.Context, m Model, w io.Writer) error {
	url := f.BaseURL + "/" + m.File(f.Release)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	_, err = io.Copy(w, resp.Body)
	return err
}

// ServiceChecker is the Fetcher of the REST backend: the model lives in the
// remote service, so the local asset is a marker recording that the service
// offers it.
type ServiceChecker struct {
	BaseURL string
	Client  *http.Client
}

var _ Fetcher = (*ServiceChecker)(nil)

func NewServiceChecker(baseURL string) *ServiceChecker {
	return &ServiceChecker{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  http.DefaultClient,
	}
}

// serviceModels is the answer of GET {BaseURL}/models
type serviceModels struct {
	Models       map[string][]string `json:"models"`
	DefaultModel string              `json:"default_model"`
}

type marker struct {
	Family  string `json:"family"`
	Model   string `json:"model"`
	Service string `json:"service"`
}

func (c *ServiceChecker) AssetName(m Model) string {
	return m.Family + ".json"
}

func (c *ServiceChecker) Fetch(ctx context.Context, m Model, w io.Writer) error {
	url := c.BaseURL + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	var sm serviceModels
	if err := json.NewDecoder(resp.Body).Decode(&sm); err != nil {
		return fmt.Errorf("JSON decoding error: %w", err)
	}

	name := matchModel(sm.Models, m.Family)
	if name == "" {
		return fmt.Errorf("%w: service %s has no model %s", ErrUnsupportedLanguage, c.BaseURL, m.Family)
	}

	return json.NewEncoder(w).Encode(marker{Family: m.Family, Model: name, Service: c.BaseURL})
}

// matchModel returns the service model name for family, preferring an exact
// match and otherwise the newest release.
func matchModel(models map[string][]string, family string) string {
	if _, ok := models[family]; ok {
		return family
	}

	found := ""
	for name := range models {
		if !strings.HasPrefix(name, family+"-") {
			continue
		}
		if found == "" || newerRelease(name, found) {
			found = name
		}
	}
	return found
}

// newerRelease compares model names field by field, numeric fields by value,
// so that ud-2.15 is newer than ud-2.5.
func newerRelease(a, b string) bool {
	fa, fb := releaseFields(a), releaseFields(b)
	for i := 0; i < len(fa) && i < len(fb); i++ {
		if fa[i] == fb[i] {
			continue
		}
		na, errA := strconv.Atoi(fa[i])
		nb, errB := strconv.Atoi(fb[i])
		if errA == nil && errB == nil {
			if na == nb {
				continue
			}
			return na > nb
		}
		return fa[i] > fb[i]
	}
	return len(fa) > len(fb)
}

func releaseFields(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '.' })
}

// ServiceModel returns the service model name recorded in the marker at path.
func ServiceModel(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var mk marker
	if err := json.Unmarshal(content, &mk); err != nil {
		return "", fmt.Errorf("model marker %s: %w", path, err)
	}
	if mk.Model == "" {
		return "", fmt.Errorf("model marker %s: no model name", path)
	}
	return mk.Model, nil
}
