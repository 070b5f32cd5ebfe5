package scanner

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Signature is a named regular-expression rule for a checkout or payment
// related code pattern. Strong signatures alone are treated as high-confidence
// evidence of a checkout flow.
type Signature struct {
	Name    string
	Pattern *regexp.Regexp
	Strong  bool
}

// DefaultCatalog is the built-in signature catalog. It is initialized once and
// never mutated; order only affects iteration, not semantics.
var DefaultCatalog = []Signature{
	{
		Name:    "checkout_keyword",
		Pattern: regexp.MustCompile(`(?i)\bcheckout\b`),
	},
	{
		Name:    "cart_keyword",
		Pattern: regexp.MustCompile(`(?i)\bcart\b`),
	},
	{
		Name:    "begin_checkout_event",
		Pattern: regexp.MustCompile(`(?i)gtag\s*\(\s*['"]event['"]\s*,\s*['"]begin_checkout['"]`),
		Strong:  true,
	},
	{
		Name:    "initiate_checkout_event",
		Pattern: regexp.MustCompile(`(?i)fbq\s*\(\s*['"]track['"]\s*,\s*['"]InitiateCheckout['"]`),
		Strong:  true,
	},
	{
		Name:    "stripe",
		Pattern: regexp.MustCompile(`(?i)\bstripe\b`),
		Strong:  true,
	},
	{
		Name:    "shopify",
		Pattern: regexp.MustCompile(`(?i)\bshopify\b`),
		Strong:  true,
	},
	{
		Name:    "klarna",
		Pattern: regexp.MustCompile(`(?i)\bklarna\b`),
	},
	{
		Name:    "adyen",
		Pattern: regexp.MustCompile(`(?i)\badyen\b`),
	},
	{
		Name:    "paypal",
		Pattern: regexp.MustCompile(`(?i)\bpaypal\b`),
	},
	{
		Name:    "apple_pay",
		Pattern: regexp.MustCompile(`(?i)apple\s*pay|applepaysession`),
	},
	{
		Name:    "google_pay",
		Pattern: regexp.MustCompile(`(?i)google\s*pay|googlepay|\bgpay\b`),
	},
	{
		Name:    "checkout_url_variable",
		Pattern: regexp.MustCompile(`(?i)checkoutUrl\s*[:=]`),
	},
	{
		Name:    "order_api_endpoint",
		Pattern: regexp.MustCompile(`(?i)(order|payment|transaction)[_-]?(api|url|endpoint)`),
	},
	{
		Name:    "cart_path",
		Pattern: regexp.MustCompile(`(?i)/cart/`),
	},
	{
		Name:    "checkout_endpoint",
		Pattern: regexp.MustCompile(`(?i)/checkout\b`),
		Strong:  true,
	},
}

// catalogFile is the on-disk shape of an operator-supplied signature file.
type catalogFile struct {
	Signatures []struct {
		Name    string `yaml:"name"`
		Pattern string `yaml:"pattern"`
		Strong  bool   `yaml:"strong"`
	} `yaml:"signatures"`
}

// LoadCatalogFile reads extra signatures from a YAML file. The entries are
// compiled eagerly so a bad pattern fails at startup rather than mid-scan.
func LoadCatalogFile(path string) ([]Signature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signatures file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse signatures file: %w", err)
	}

	sigs := make([]Signature, 0, len(file.Signatures))
	for i, entry := range file.Signatures {
		if entry.Name == "" || entry.Pattern == "" {
			return nil, fmt.Errorf("signature %d: name and pattern are required", i)
		}
		re, err := regexp.Compile(entry.Pattern)
		if err != nil {
			return nil, fmt.Errorf("signature %q: %w", entry.Name, err)
		}
		sigs = append(sigs, Signature{
			Name:    entry.Name,
			Pattern: re,
			Strong:  entry.Strong,
		})
	}

	return sigs, nil
}
