// Package checkup runs the prerequisite checklist before the other
// operational tools. Probes are independent boolean checks; a failure never
// aborts the remaining probes, it is accumulated into the final verdict.
package checkup

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/config"

	"gorm.io/gorm"
)

// Probe is one prerequisite check.
type Probe struct {
	Name string
	// Required probes gate the aggregate verdict; optional ones only warn.
	Required bool
	Run      func(ctx context.Context) (detail string, err error)
}

// Record is a probe's structured result.
type Record struct {
	Name     string
	Required bool
	Passed   bool
	Detail   string
}

// Checker holds the dependencies probes need. DB may be nil when the
// database is not expected to be up yet.
type Checker struct {
	cfg    *config.Config
	db     *gorm.DB
	client *http.Client
}

func New(cfg *config.Config, db *gorm.DB) *Checker {
	return &Checker{
		cfg:    cfg,
		db:     db,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Probes returns the fixed, ordered checklist.
func (c *Checker) Probes() []Probe {
	return []Probe{
		{Name: "project configured", Required: true, Run: c.probeProject},
		{Name: "JWT secret set", Required: true, Run: c.probeJWTSecret},
		{Name: "Gemini API key set", Required: true, Run: c.probeGeminiKey},
		{Name: "service account credentials file", Required: false, Run: c.probeCredentialsFile},
		{Name: ".env file present", Required: false, Run: c.probeDotenv},
		{Name: "storage root writable", Required: true, Run: c.probeStorageRoot},
		{Name: "database reachable", Required: true, Run: c.probeDatabase},
		{Name: "API health endpoint", Required: false, Run: c.probeAPIHealth},
	}
}

// RunAll executes every probe and returns records in checklist order.
func (c *Checker) RunAll(ctx context.Context) []Record {
	probes := c.Probes()
	records := make([]Record, 0, len(probes))
	for _, probe := range probes {
		detail, err := probe.Run(ctx)
		record := Record{Name: probe.Name, Required: probe.Required, Passed: err == nil, Detail: detail}
		if err != nil {
			record.Detail = err.Error()
		}
		records = append(records, record)
	}
	return records
}

// Aggregate reduces records to the overall verdict: the logical AND over all
// required probes. No failure is dropped from the aggregate.
func Aggregate(records []Record) bool {
	for _, record := range records {
		if record.Required && !record.Passed {
			return false
		}
	}
	return true
}

func (c *Checker) probeProject(ctx context.Context) (string, error) {
	if c.cfg.GoogleCloudProject == "" && c.cfg.FirebaseProjectID == "" {
		return "", fmt.Errorf("set GOOGLE_CLOUD_PROJECT or FIREBASE_PROJECT_ID")
	}
	project := c.cfg.GoogleCloudProject
	if project == "" {
		project = c.cfg.FirebaseProjectID
	}
	return "project " + project, nil
}

func (c *Checker) probeJWTSecret(ctx context.Context) (string, error) {
	if c.cfg.JWTSecret == "" || c.cfg.JWTSecret == "supersecretkey" {
		return "", fmt.Errorf("JWT_SECRET is unset or still the development default")
	}
	return "secret configured", nil
}

func (c *Checker) probeGeminiKey(ctx context.Context) (string, error) {
	if c.cfg.GeminiAPIKey == "" {
		return "", fmt.Errorf("set GEMINI_API_KEY to call the generative models")
	}
	return "key configured", nil
}

func (c *Checker) probeCredentialsFile(ctx context.Context) (string, error) {
	path := c.cfg.ApplicationCredentials
	if path == "" {
		return "GOOGLE_APPLICATION_CREDENTIALS not set, using ambient credentials", nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("credentials file %s not readable: %v", path, err)
	}
	return "credentials file " + path, nil
}

func (c *Checker) probeDotenv(ctx context.Context) (string, error) {
	if _, err := os.Stat(".env"); err != nil {
		return "", fmt.Errorf(".env not found, relying on exported environment variables")
	}
	return ".env present", nil
}

func (c *Checker) probeStorageRoot(ctx context.Context) (string, error) {
	root := c.cfg.StorageRoot
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("cannot create storage root %s: %v", root, err)
	}
	marker := filepath.Join(root, ".write-check")
	if err := os.WriteFile(marker, []byte("ok"), 0o644); err != nil {
		return "", fmt.Errorf("storage root %s not writable: %v", root, err)
	}
	_ = os.Remove(marker)
	return "storage root " + root, nil
}

func (c *Checker) probeDatabase(ctx context.Context) (string, error) {
	if c.db == nil {
		return "", fmt.Errorf("database connection not configured")
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return "", err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return "", fmt.Errorf("database ping failed: %v", err)
	}
	return fmt.Sprintf("connected to %s:%s/%s", c.cfg.DBHost, c.cfg.DBPort, c.cfg.DBName), nil
}

func (c *Checker) probeAPIHealth(ctx context.Context) (string, error) {
	url := strings.TrimRight(c.cfg.APIBaseURL, "/") + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API unreachable at %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("health endpoint returned %d", resp.StatusCode)
	}
	return "API healthy at " + url, nil
}
