package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/revelaction/annotok/model"
	sent "github.com/revelaction/annotok/sentence"
)

// RESTAnalyzer calls a UDPipe REST service.
type RESTAnalyzer struct {
	BaseURL string
	Client  *http.Client

	// Models, when set, locates the model markers written by the
	// provisioner. The recorded service model name is sent instead of the
	// catalog family.
	Models ModelPaths
}

var _ Analyzer = (*RESTAnalyzer)(nil)

func NewRESTAnalyzer(baseURL string) *RESTAnalyzer {
	return &RESTAnalyzer{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  http.DefaultClient,
	}
}

// processResponse is the answer of POST {BaseURL}/process
type processResponse struct {
	Model  string `json:"model"`
	Result string `json:"result"`
}

func (a *RESTAnalyzer) Analyze(ctx context.Context, text, lang string) (sent.Doc, error) {
	name, err := a.modelName(lang)
	if err != nil {
		return sent.Doc{}, err
	}

	// Empty values enable a stage with its default options. The tagger
	// stage also lemmatizes.
	form := url.Values{}
	form.Set("model", name)
	form.Set("tokenizer", "")
	form.Set("tagger", "")
	form.Set("parser", "")
	form.Set("data", text)

	endpoint := a.BaseURL + "/process"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return sent.Doc{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.Client.Do(req)
	if err != nil {
		return sent.Doc{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return sent.Doc{}, fmt.Errorf("POST %s: %s: %s", endpoint, resp.Status, strings.TrimSpace(string(msg)))
	}

	var pr processResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return parseResult(pr.Result)
}

// modelName is the recorded service model of lang, or its catalog family
// when no marker exists yet.
func (a *RESTAnalyzer) modelName(lang string) (string, error) {
	m, err := model.Lookup(lang)
	if err != nil {
		return "", err
	}
	if a.Models == nil {
		return m.Family, nil
	}

	path, err := a.Models.Path(lang)
	if err != nil {
		return "", err
	}
	name, err := model.ServiceModel(path)
	if errors.Is(err, fs.ErrNotExist) {
		return m.Family, nil
	}
	return name, err
}
