package parser

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/edgarlab/filingest/internal/catalog"
	"github.com/edgarlab/filingest/internal/filing"
	"github.com/edgarlab/filingest/internal/textnorm"
)

// OwnershipParser reads the EDGAR ownership schema shared by Forms 3, 4,
// and 5. The layout is fixed, so sections come from field positions rather
// than heading heuristics.
type OwnershipParser struct {
	cat *catalog.Catalog
}

// NewOwnershipParser builds a parser for one ownership form catalog.
func NewOwnershipParser(cat *catalog.Catalog) *OwnershipParser {
	return &OwnershipParser{cat: cat}
}

type valueNode struct {
	Value string `xml:"value"`
}

type transactionAmounts struct {
	Shares        valueNode `xml:"transactionShares"`
	PricePerShare valueNode `xml:"transactionPricePerShare"`
}

type postTransactionAmounts struct {
	SharesOwned valueNode `xml:"sharesOwnedFollowingTransaction"`
}

type ownershipNature struct {
	DirectOrIndirect valueNode `xml:"directOrIndirectOwnership"`
}

type underlyingSecurity struct {
	Shares valueNode `xml:"underlyingSecurityShares"`
}

type securityEntry struct {
	SecurityTitle          valueNode              `xml:"securityTitle"`
	TransactionAmounts     transactionAmounts     `xml:"transactionAmounts"`
	PostTransactionAmounts postTransactionAmounts `xml:"postTransactionAmounts"`
	OwnershipNature        ownershipNature        `xml:"ownershipNature"`
	ExercisePrice          valueNode              `xml:"conversionOrExercisePrice"`
	ExpirationDate         valueNode              `xml:"expirationDate"`
	UnderlyingSecurity     underlyingSecurity     `xml:"underlyingSecurity"`
}

type securityTable struct {
	Transactions []securityEntry `xml:"nonDerivativeTransaction"`
	Holdings     []securityEntry `xml:"nonDerivativeHolding"`
}

type derivativeTable struct {
	Transactions []securityEntry `xml:"derivativeTransaction"`
	Holdings     []securityEntry `xml:"derivativeHolding"`
}

type issuer struct {
	CIK           string `xml:"issuerCik"`
	Name          string `xml:"issuerName"`
	TradingSymbol string `xml:"issuerTradingSymbol"`
}

type reportingOwner struct {
	ID struct {
		CIK  string `xml:"rptOwnerCik"`
		Name string `xml:"rptOwnerName"`
	} `xml:"reportingOwnerId"`
	Address struct {
		Street1 string `xml:"rptOwnerStreet1"`
		City    string `xml:"rptOwnerCity"`
		State   string `xml:"rptOwnerState"`
		Zip     string `xml:"rptOwnerZipCode"`
	} `xml:"reportingOwnerAddress"`
	Relationship struct {
		IsOfficer    string `xml:"isOfficer"`
		OfficerTitle string `xml:"officerTitle"`
	} `xml:"reportingOwnerRelationship"`
}

type footnote struct {
	ID   string `xml:"id,attr"`
	Text string `xml:",chardata"`
}

type ownerSignature struct {
	Name string `xml:"signatureName"`
	Date string `xml:"signatureDate"`
}

type ownershipDocument struct {
	SchemaVersion             string           `xml:"schemaVersion"`
	DocumentType              string           `xml:"documentType"`
	PeriodOfReport            string           `xml:"periodOfReport"`
	DateOfEarliestTransaction string           `xml:"dateOfEarliestTransaction"`
	Issuer                    *issuer          `xml:"issuer"`
	ReportingOwner            *reportingOwner  `xml:"reportingOwner"`
	NonDerivativeTable        *securityTable   `xml:"nonDerivativeTable"`
	DerivativeTable           *derivativeTable `xml:"derivativeTable"`
	Footnotes                 *struct {
		Items []footnote `xml:"footnote"`
	} `xml:"footnotes"`
	Remarks        string          `xml:"remarks"`
	OwnerSignature *ownerSignature `xml:"ownerSignature"`
}

// Parse decodes the XML body and fills the document's fixed sections.
func (p *OwnershipParser) Parse(r io.Reader, doc *filing.Document) error {
	var od ownershipDocument
	if err := xml.NewDecoder(r).Decode(&od); err != nil {
		return fmt.Errorf("parse ownership xml: %w", err)
	}

	switch p.cat.Form {
	case "3":
		buildForm3(&od, doc)
	case "4":
		buildForm4(&od, doc)
	case "5":
		buildForm5(&od, doc)
	default:
		return fmt.Errorf("form %q is not an ownership form", p.cat.Form)
	}
	return nil
}

func buildForm3(od *ownershipDocument, doc *filing.Document) {
	addBlock(doc, catalog.SectionCoverDate, fmt.Sprintf(
		"Document Type: %s\nPeriod of Report: %s\nSchema Version: %s",
		od.DocumentType, od.PeriodOfReport, od.SchemaVersion))

	addIssuer(doc, od.Issuer)
	addOwner(doc, od.ReportingOwner)

	if od.NonDerivativeTable != nil {
		rows := [][]string{}
		for _, hold := range od.NonDerivativeTable.Holdings {
			rows = append(rows, []string{
				hold.SecurityTitle.Value,
				hold.PostTransactionAmounts.SharesOwned.Value,
				hold.OwnershipNature.DirectOrIndirect.Value,
			})
		}
		addTable(doc, catalog.SectionForm3TableI,
			[]string{"Security Title", "Shares Owned", "Ownership"}, rows)
	}

	if od.DerivativeTable != nil {
		rows := [][]string{}
		for _, hold := range od.DerivativeTable.Holdings {
			rows = append(rows, []string{
				hold.SecurityTitle.Value,
				hold.UnderlyingSecurity.Shares.Value,
				hold.ExercisePrice.Value,
				hold.ExpirationDate.Value,
				hold.OwnershipNature.DirectOrIndirect.Value,
			})
		}
		addTable(doc, catalog.SectionForm3TableII,
			[]string{"Security Title", "Underlying Shares", "Exercise Price", "Expiration", "Ownership"}, rows)
	}

	addFootnotes(doc, od)
	addSignature(doc, od.OwnerSignature)
}

func buildForm4(od *ownershipDocument, doc *filing.Document) {
	addBlock(doc, catalog.SectionCoverDate, fmt.Sprintf(
		"Document Type: %s\nPeriod of Report: %s\nTransaction Date (earliest): %s",
		od.DocumentType, od.PeriodOfReport, od.DateOfEarliestTransaction))

	addIssuer(doc, od.Issuer)
	addOwner(doc, od.ReportingOwner)

	if od.NonDerivativeTable != nil {
		rows := [][]string{}
		for _, tx := range od.NonDerivativeTable.Transactions {
			rows = append(rows, []string{
				tx.SecurityTitle.Value,
				tx.TransactionAmounts.Shares.Value,
				tx.TransactionAmounts.PricePerShare.Value,
				tx.PostTransactionAmounts.SharesOwned.Value,
				tx.OwnershipNature.DirectOrIndirect.Value,
			})
		}
		for _, hold := range od.NonDerivativeTable.Holdings {
			rows = append(rows, []string{
				hold.SecurityTitle.Value,
				"", "",
				hold.PostTransactionAmounts.SharesOwned.Value,
				hold.OwnershipNature.DirectOrIndirect.Value,
			})
		}
		if len(rows) > 0 {
			addTable(doc, catalog.SectionForm4TableI,
				[]string{"Security Title", "Trans. Shares", "Trans. Price", "Shares After", "Ownership"}, rows)
		}
	}

	if od.DerivativeTable != nil {
		rows := [][]string{}
		for _, tx := range od.DerivativeTable.Transactions {
			rows = append(rows, []string{
				tx.SecurityTitle.Value,
				tx.UnderlyingSecurity.Shares.Value,
				tx.TransactionAmounts.PricePerShare.Value,
				tx.ExpirationDate.Value,
				tx.TransactionAmounts.Shares.Value,
				tx.OwnershipNature.DirectOrIndirect.Value,
			})
		}
		for _, hold := range od.DerivativeTable.Holdings {
			rows = append(rows, []string{
				hold.SecurityTitle.Value,
				hold.UnderlyingSecurity.Shares.Value,
				"",
				hold.ExpirationDate.Value,
				"",
				hold.OwnershipNature.DirectOrIndirect.Value,
			})
		}
		if len(rows) > 0 {
			addTable(doc, catalog.SectionForm4TableII,
				[]string{"Security Title", "Underlying Shares", "Ex. Price", "Expiration", "Trans. Shares", "Ownership"}, rows)
		}
	}

	addFootnotes(doc, od)
	addSignature(doc, od.OwnerSignature)
}

func buildForm5(od *ownershipDocument, doc *filing.Document) {
	addBlock(doc, catalog.SectionCoverPeriod, fmt.Sprintf(
		"Document Type: %s\nPeriod of Report: %s\nSchema Version: %s",
		od.DocumentType, od.PeriodOfReport, od.SchemaVersion))

	addIssuer(doc, od.Issuer)
	addOwner(doc, od.ReportingOwner)

	// Annual statements report holdings; a table with no rows still shows
	// up as an empty statement.
	if od.NonDerivativeTable != nil {
		rows := [][]string{}
		for _, hold := range od.NonDerivativeTable.Holdings {
			rows = append(rows, []string{
				hold.SecurityTitle.Value,
				hold.PostTransactionAmounts.SharesOwned.Value,
				hold.OwnershipNature.DirectOrIndirect.Value,
			})
		}
		addTable(doc, catalog.SectionForm5TableI,
			[]string{"Security Title", "Shares Owned", "Ownership"}, rows)
	}

	if od.DerivativeTable != nil {
		rows := [][]string{}
		for _, hold := range od.DerivativeTable.Holdings {
			rows = append(rows, []string{
				hold.SecurityTitle.Value,
				hold.UnderlyingSecurity.Shares.Value,
				hold.ExpirationDate.Value,
				hold.OwnershipNature.DirectOrIndirect.Value,
			})
		}
		addTable(doc, catalog.SectionForm5TableII,
			[]string{"Security Title", "Underlying Shares", "Expiration", "Ownership"}, rows)
	}

	addFootnotes(doc, od)
	addSignature(doc, od.OwnerSignature)
}

// addBlock normalizes and appends one content block; blocks that normalize
// to nothing are dropped so absent XML fields cannot mark a section present.
func addBlock(doc *filing.Document, label, text string) {
	doc.AddBlock(label, textnorm.Normalize(text))
}

func addIssuer(doc *filing.Document, iss *issuer) {
	if iss == nil {
		return
	}
	rows := [][]string{
		{"CIK", iss.CIK},
		{"Name", iss.Name},
		{"Trading Symbol", iss.TradingSymbol},
	}
	addTable(doc, catalog.SectionIssuer, []string{"Field", "Value"}, rows)
}

func addOwner(doc *filing.Document, rep *reportingOwner) {
	if rep == nil {
		return
	}
	rows := [][]string{
		{"Owner CIK", rep.ID.CIK},
		{"Owner Name", rep.ID.Name},
		{"Street 1", rep.Address.Street1},
		{"City", rep.Address.City},
		{"State", rep.Address.State},
		{"Zip", rep.Address.Zip},
		{"Is Officer", rep.Relationship.IsOfficer},
		{"Officer Title", rep.Relationship.OfficerTitle},
	}
	addTable(doc, catalog.SectionOwner, []string{"Field", "Value"}, rows)
}

// addTable renders the rows as markdown into the section's text stream and
// records the structured table alongside.
func addTable(doc *filing.Document, label string, headers []string, rows [][]string) {
	rec := filing.TableRecord{
		Headers:     headers,
		Rows:        rows,
		PreContext:  "",
		PostContext: "",
	}
	addBlock(doc, label, rec.Markdown())
	st := doc.Section(label)
	st.Tables = append(st.Tables, rec)
}

func addFootnotes(doc *filing.Document, od *ownershipDocument) {
	if od.Footnotes != nil {
		for _, fn := range od.Footnotes.Items {
			addBlock(doc, catalog.SectionFootnotes, fmt.Sprintf("[%s] %s", fn.ID, fn.Text))
		}
	}
	if od.Remarks != "" {
		addBlock(doc, catalog.SectionFootnotes, "Remarks: "+od.Remarks)
	}
}

func addSignature(doc *filing.Document, sig *ownerSignature) {
	if sig == nil {
		return
	}
	addBlock(doc, catalog.SectionSignature, sig.Name)
	addBlock(doc, catalog.SectionDateSigned, sig.Date)
}
