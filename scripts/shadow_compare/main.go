// Command shadow_compare replays the same requests against the legacy PHP
// backend and this API, and reports response differences. It is used while the
// cutover is in progress to prove the wire contract still matches.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type target struct {
	Method   string          `json:"method"`
	Path     string          `json:"path"`
	Body     json.RawMessage `json:"body,omitempty"`
	Auth     bool            `json:"auth,omitempty"`
	Critical bool            `json:"critical"`
}

type config struct {
	// Login is posted to /login on both backends to obtain bearer tokens for
	// targets marked auth. Leave empty to skip authenticated targets.
	Login json.RawMessage `json:"login,omitempty"`
	// Volatile keys are masked before bodies are compared. Tokens and
	// timestamps differ per request even when the contract matches.
	Volatile []string `json:"volatile,omitempty"`
	Targets  []target `json:"targets"`
}

type comparison struct {
	Target         target
	LegacyStatus   int
	GoStatus       int
	StatusMatch    bool
	BodyMatch      bool
	Skipped        bool
	Error          error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:8000", "Legacy API base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	cfg, err := loadConfig(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}

	goToken, legacyToken := "", ""
	if len(cfg.Login) > 0 {
		if goToken, err = obtainToken(client, goBase, cfg.Login); err != nil {
			log.Fatalf("login against go backend failed: %v", err)
		}
		if legacyToken, err = obtainToken(client, legacyBase, cfg.Login); err != nil {
			log.Fatalf("login against legacy backend failed: %v", err)
		}
	}

	var (
		comparisons  []comparison
		breaking     int
		optionalDiff int
	)

	for _, t := range cfg.Targets {
		if t.Auth && goToken == "" {
			comparisons = append(comparisons, comparison{Target: t, Skipped: true})
			continue
		}
		comp := compareTarget(client, goBase, legacyBase, goToken, legacyToken, t, cfg.Volatile)
		if comp.Error != nil || !comp.StatusMatch || !comp.BodyMatch {
			if t.Critical {
				breaking++
			} else {
				optionalDiff++
			}
		}
		comparisons = append(comparisons, comp)
	}

	printReport(comparisons)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return &cfg, nil
}

// obtainToken logs into a backend and extracts the login_token field.
func obtainToken(client *http.Client, base string, payload json.RawMessage) (string, error) {
	resp, _, err := performRequest(client, base, target{Method: http.MethodPost, Path: "/login", Body: payload}, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login returned status %d", resp.StatusCode)
	}

	var body struct {
		LoginToken string `json:"login_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.LoginToken == "" {
		return "", errors.New("login response carried no login_token")
	}
	return body.LoginToken, nil
}

func compareTarget(client *http.Client, goBase, legacyBase, goToken, legacyToken string, tgt target, volatile []string) comparison {
	comp := comparison{Target: tgt}

	token := ""
	if tgt.Auth {
		token = goToken
	}
	goResp, goDur, goErr := performRequest(client, goBase, tgt, token)
	if tgt.Auth {
		token = legacyToken
	}
	legacyResp, legacyDur, legacyErr := performRequest(client, legacyBase, tgt, token)
	comp.DurationGo = goDur
	comp.DurationLegacy = legacyDur

	if goErr != nil {
		comp.Error = fmt.Errorf("go request failed: %w", goErr)
		return comp
	}
	if legacyErr != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", legacyErr)
		return comp
	}

	comp.GoStatus = goResp.StatusCode
	comp.LegacyStatus = legacyResp.StatusCode
	comp.StatusMatch = comp.GoStatus == comp.LegacyStatus

	defer goResp.Body.Close()
	defer legacyResp.Body.Close()

	goBody, err := io.ReadAll(goResp.Body)
	if err != nil {
		comp.Error = fmt.Errorf("read go body: %w", err)
		return comp
	}
	legacyBody, err := io.ReadAll(legacyResp.Body)
	if err != nil {
		comp.Error = fmt.Errorf("read legacy body: %w", err)
		return comp
	}

	comp.BodyMatch = bodiesEqual(goBody, legacyBody, volatile)

	return comp
}

func performRequest(client *http.Client, base string, tgt target, token string) (*http.Response, time.Duration, error) {
	if client == nil {
		return nil, 0, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := strings.TrimRight(base, "/") + path

	var body io.Reader
	if len(tgt.Body) > 0 {
		body = bytes.NewReader(tgt.Body)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, 0, err
	}
	if len(tgt.Body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	return resp, time.Since(start), nil
}

func bodiesEqual(a, b []byte, volatile []string) bool {
	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b))
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	normalize(&aj, volatile)
	normalize(&bj, volatile)
	return reflect.DeepEqual(aj, bj)
}

// normalize rewrites number types to a single representation and blanks
// volatile keys so token and timestamp churn does not flag a diff.
func normalize(v *interface{}, volatile []string) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, v2 := range val {
			if isVolatile(k, volatile) {
				val[k] = "<masked>"
				continue
			}
			normalize(&v2, volatile)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2, volatile)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func isVolatile(key string, volatile []string) bool {
	for _, k := range volatile {
		if k == key {
			return true
		}
	}
	return false
}

func printReport(results []comparison) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, res := range results {
		status := "OK"
		switch {
		case res.Skipped:
			status = "SKIP"
		case res.Error != nil:
			status = "ERROR"
		case !res.StatusMatch || !res.BodyMatch:
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		if res.Skipped {
			fmt.Println("  Skipped: no login payload configured for an authenticated target")
			continue
		}
		fmt.Printf("  Go Status: %d (%s)\n", res.GoStatus, res.DurationGo)
		fmt.Printf("  Legacy Status: %d (%s)\n", res.LegacyStatus, res.DurationLegacy)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
		} else {
			fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
		}
	}
}
