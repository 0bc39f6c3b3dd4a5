package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/ripsgen/internal/model"
)

// Clinic is the static, clinic-specific profile stamped onto every report.
type Clinic struct {
	ProviderCode      string `yaml:"provider_code"`
	LegalName         string `yaml:"legal_name"`
	IdentityType      string `yaml:"identity_type"`
	IdentityNumber    string `yaml:"identity_number"`
	InvoiceNumber     string `yaml:"invoice_number"`
	AdministratorCode string `yaml:"administrator_code"`
	PayerName         string `yaml:"payer_name"`
	UserType          string `yaml:"user_type"`

	DefaultDepartment   string `yaml:"default_department"`
	DefaultMunicipality string `yaml:"default_municipality"`
	ResidenceZone       string `yaml:"residence_zone"`

	ConsultationPurpose string `yaml:"consultation_purpose"`
	ExternalCause       string `yaml:"external_cause"`
	DiagnosisType       string `yaml:"diagnosis_type"`
	FirstVisitCode      string `yaml:"first_visit_code"`
	// TODO: SecondVisitCode is unused until visit history is tracked per
	// patient; every AC row carries FirstVisitCode.
	SecondVisitCode   string `yaml:"second_visit_code"`
	ConsultationValue string `yaml:"consultation_value"`
	ModeratorFee      string `yaml:"moderator_fee"`

	MonthNames map[string]string `yaml:"month_names"`
	AgeRule    model.AgeRule     `yaml:"age_rule"` // empty keeps the variant's rule
	CRLF       bool              `yaml:"crlf"`
}

// DefaultClinic returns the profile of the clinic the tool was first built for.
func DefaultClinic() Clinic {
	return Clinic{
		ProviderCode:        "050010185901",
		LegalName:           "LUIS FERNANDO GOMEZ URIBE",
		IdentityType:        "CC",
		IdentityNumber:      "8265835",
		InvoiceNumber:       "1",
		AdministratorCode:   "000000",
		PayerName:           "PARTICULAR",
		UserType:            "4",
		DefaultDepartment:   "05",
		DefaultMunicipality: "001",
		ResidenceZone:       "U",
		ConsultationPurpose: "10",
		ExternalCause:       "15",
		DiagnosisType:       "1",
		FirstVisitCode:      "890283",
		SecondVisitCode:     "890383",
		ConsultationValue:   "1",
		ModeratorFee:        "0",
	}
}

// LoadFromFile reads a YAML clinic profile and overlays its non-empty values.
func (c *Clinic) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}
	var yc Clinic
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse profile: %w", err)
	}
	c.merge(&yc)
	return c.Validate()
}

func (c *Clinic) merge(o *Clinic) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.ProviderCode, o.ProviderCode)
	set(&c.LegalName, o.LegalName)
	set(&c.IdentityType, o.IdentityType)
	set(&c.IdentityNumber, o.IdentityNumber)
	set(&c.InvoiceNumber, o.InvoiceNumber)
	set(&c.AdministratorCode, o.AdministratorCode)
	set(&c.PayerName, o.PayerName)
	set(&c.UserType, o.UserType)
	set(&c.DefaultDepartment, o.DefaultDepartment)
	set(&c.DefaultMunicipality, o.DefaultMunicipality)
	set(&c.ResidenceZone, o.ResidenceZone)
	set(&c.ConsultationPurpose, o.ConsultationPurpose)
	set(&c.ExternalCause, o.ExternalCause)
	set(&c.DiagnosisType, o.DiagnosisType)
	set(&c.FirstVisitCode, o.FirstVisitCode)
	set(&c.SecondVisitCode, o.SecondVisitCode)
	set(&c.ConsultationValue, o.ConsultationValue)
	set(&c.ModeratorFee, o.ModeratorFee)
	if len(o.MonthNames) > 0 {
		c.MonthNames = o.MonthNames
	}
	if o.AgeRule != "" {
		c.AgeRule = o.AgeRule
	}
	if o.CRLF {
		c.CRLF = true
	}
}

var (
	providerCodePattern = regexp.MustCompile(`^\d{12}$`)
	departmentPattern   = regexp.MustCompile(`^\d{2}$`)
	municipalityPattern = regexp.MustCompile(`^\d{3}$`)
	numericPattern      = regexp.MustCompile(`^\d+$`)
)

// Validate checks the shape of the regulator-facing codes.
func (c *Clinic) Validate() error {
	if !providerCodePattern.MatchString(c.ProviderCode) {
		return fmt.Errorf("provider_code must be 12 digits, got %q", c.ProviderCode)
	}
	if c.LegalName == "" {
		return fmt.Errorf("legal_name is required")
	}
	if c.IdentityNumber == "" {
		return fmt.Errorf("identity_number is required")
	}
	if !departmentPattern.MatchString(c.DefaultDepartment) {
		return fmt.Errorf("default_department must be 2 digits, got %q", c.DefaultDepartment)
	}
	if !municipalityPattern.MatchString(c.DefaultMunicipality) {
		return fmt.Errorf("default_municipality must be 3 digits, got %q", c.DefaultMunicipality)
	}
	if c.ResidenceZone != "U" && c.ResidenceZone != "R" {
		return fmt.Errorf("residence_zone must be U or R, got %q", c.ResidenceZone)
	}
	for name, v := range map[string]string{
		"consultation_value": c.ConsultationValue,
		"moderator_fee":      c.ModeratorFee,
		"first_visit_code":   c.FirstVisitCode,
	} {
		if !numericPattern.MatchString(v) {
			return fmt.Errorf("%s must be numeric, got %q", name, v)
		}
	}
	if c.AgeRule != "" && !c.AgeRule.Valid() {
		return fmt.Errorf("unknown age_rule %q (use detailed or months)", c.AgeRule)
	}
	for k := range c.MonthNames {
		if len(k) != 2 || k < "01" || k > "12" {
			return fmt.Errorf("month_names key %q must be 01-12", k)
		}
	}
	return nil
}
