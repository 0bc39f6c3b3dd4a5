package model

import "strconv"

// ACRecord is one consultation line.
type ACRecord struct {
	InvoiceNumber       string
	ProviderCode        string
	DocumentType        DocumentType
	DocumentNumber      string
	VisitDate           string // DD/MM/YYYY
	AuthorizationNumber string
	ConsultationCode    string
	Purpose             string
	ExternalCause       string
	PrincipalDiagnosis  string
	RelatedDiagnosis1   string
	RelatedDiagnosis2   string
	RelatedDiagnosis3   string
	DiagnosisType       string
	ConsultationValue   string
	ModeratorFee        string
	NetValue            string
}

// Fields returns the values in AC column order.
func (r *ACRecord) Fields() []string {
	return []string{
		r.InvoiceNumber,
		r.ProviderCode,
		string(r.DocumentType),
		r.DocumentNumber,
		r.VisitDate,
		r.AuthorizationNumber,
		r.ConsultationCode,
		r.Purpose,
		r.ExternalCause,
		r.PrincipalDiagnosis,
		r.RelatedDiagnosis1,
		r.RelatedDiagnosis2,
		r.RelatedDiagnosis3,
		r.DiagnosisType,
		r.ConsultationValue,
		r.ModeratorFee,
		r.NetValue,
	}
}

// IdentityKey is the (document type, document number) pair keying a patient.
type IdentityKey struct {
	Type   DocumentType
	Number string
}

// Identity returns the record's identity key.
func (r *ACRecord) Identity() IdentityKey {
	return IdentityKey{Type: r.DocumentType, Number: r.DocumentNumber}
}

// USRecord is one patient line.
type USRecord struct {
	DocumentType      DocumentType
	DocumentNumber    string
	AdministratorCode string
	UserType          string
	FirstLastName     string
	SecondLastName    string
	FirstName         string
	SecondName        string
	Age               int
	AgeUnit           AgeUnit
	Sex               string
	DepartmentCode    string
	MunicipalityCode  string
	ResidenceZone     string
}

// Fields returns the values in US column order.
func (r *USRecord) Fields() []string {
	return []string{
		string(r.DocumentType),
		r.DocumentNumber,
		r.AdministratorCode,
		r.UserType,
		r.FirstLastName,
		r.SecondLastName,
		r.FirstName,
		r.SecondName,
		strconv.Itoa(r.Age),
		string(r.AgeUnit),
		r.Sex,
		r.DepartmentCode,
		r.MunicipalityCode,
		r.ResidenceZone,
	}
}

// AFRecord is the single invoice line of a run.
type AFRecord struct {
	ProviderCode      string
	LegalName         string
	IdentityType      string
	IdentityNumber    string
	InvoiceNumber     string
	IssueDate         string
	PeriodStart       string
	PeriodEnd         string
	AdministratorCode string
	PayerName         string
	ContractNumber    string
	BenefitsPlan      string
	PolicyNumber      string
	Copay             string
	Commission        string
	Discounts         string
	NetPayable        string
}

// Fields returns the values in AF column order.
func (r *AFRecord) Fields() []string {
	return []string{
		r.ProviderCode,
		r.LegalName,
		r.IdentityType,
		r.IdentityNumber,
		r.InvoiceNumber,
		r.IssueDate,
		r.PeriodStart,
		r.PeriodEnd,
		r.AdministratorCode,
		r.PayerName,
		r.ContractNumber,
		r.BenefitsPlan,
		r.PolicyNumber,
		r.Copay,
		r.Commission,
		r.Discounts,
		r.NetPayable,
	}
}

// CTRecord is one control line citing another file's row count.
type CTRecord struct {
	ProviderCode  string
	RemissionDate string
	FileCode      string
	Records       int
}

// Fields returns the values in CT column order.
func (r *CTRecord) Fields() []string {
	return []string{
		r.ProviderCode,
		r.RemissionDate,
		r.FileCode,
		strconv.Itoa(r.Records),
	}
}
