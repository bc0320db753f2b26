package parser

import (
	"strings"
	"testing"

	"github.com/edgarlab/filingest/internal/catalog"
	"github.com/edgarlab/filingest/internal/filing"
)

func parseOwnership(t *testing.T, form, src string) *filing.Document {
	t.Helper()
	cat, err := catalog.ForForm(form)
	if err != nil {
		t.Fatalf("catalog for %s: %v", form, err)
	}
	doc := filing.NewDocument(filing.Meta{FormType: form}, cat.Labels)
	p := NewOwnershipParser(cat)
	if err := p.Parse(strings.NewReader(src), doc); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

const form4Fixture = `<?xml version="1.0"?>
<ownershipDocument>
  <schemaVersion>X0508</schemaVersion>
  <documentType>4</documentType>
  <periodOfReport>2024-02-01</periodOfReport>
  <dateOfEarliestTransaction>2024-02-01</dateOfEarliestTransaction>
  <issuer>
    <issuerCik>0000320193</issuerCik>
    <issuerName>Apple Inc.</issuerName>
    <issuerTradingSymbol>AAPL</issuerTradingSymbol>
  </issuer>
  <reportingOwner>
    <reportingOwnerId>
      <rptOwnerCik>0001214156</rptOwnerCik>
      <rptOwnerName>DOE JANE</rptOwnerName>
    </reportingOwnerId>
    <reportingOwnerAddress>
      <rptOwnerStreet1>ONE APPLE PARK WAY</rptOwnerStreet1>
      <rptOwnerCity>CUPERTINO</rptOwnerCity>
      <rptOwnerState>CA</rptOwnerState>
      <rptOwnerZipCode>95014</rptOwnerZipCode>
    </reportingOwnerAddress>
    <reportingOwnerRelationship>
      <isOfficer>1</isOfficer>
      <officerTitle>Senior Vice President</officerTitle>
    </reportingOwnerRelationship>
  </reportingOwner>
  <nonDerivativeTable>
    <nonDerivativeTransaction>
      <securityTitle><value>Common Stock</value></securityTitle>
      <transactionAmounts>
        <transactionShares><value>1000</value></transactionShares>
        <transactionPricePerShare><value>185.50</value></transactionPricePerShare>
      </transactionAmounts>
      <postTransactionAmounts>
        <sharesOwnedFollowingTransaction><value>50000</value></sharesOwnedFollowingTransaction>
      </postTransactionAmounts>
      <ownershipNature>
        <directOrIndirectOwnership><value>D</value></directOrIndirectOwnership>
      </ownershipNature>
    </nonDerivativeTransaction>
    <nonDerivativeHolding>
      <securityTitle><value>Common Stock</value></securityTitle>
      <postTransactionAmounts>
        <sharesOwnedFollowingTransaction><value>12000</value></sharesOwnedFollowingTransaction>
      </postTransactionAmounts>
      <ownershipNature>
        <directOrIndirectOwnership><value>I</value></directOrIndirectOwnership>
      </ownershipNature>
    </nonDerivativeHolding>
  </nonDerivativeTable>
  <derivativeTable>
    <derivativeTransaction>
      <securityTitle><value>Restricted Stock Unit</value></securityTitle>
      <underlyingSecurity>
        <underlyingSecurityShares><value>2000</value></underlyingSecurityShares>
      </underlyingSecurity>
      <transactionAmounts>
        <transactionShares><value>2000</value></transactionShares>
        <transactionPricePerShare><value>0</value></transactionPricePerShare>
      </transactionAmounts>
      <expirationDate><value>2030-01-01</value></expirationDate>
      <ownershipNature>
        <directOrIndirectOwnership><value>D</value></directOrIndirectOwnership>
      </ownershipNature>
    </derivativeTransaction>
  </derivativeTable>
  <footnotes>
    <footnote id="F1">Shares held by family trust.</footnote>
  </footnotes>
  <remarks>Exercise of vested units.</remarks>
  <ownerSignature>
    <signatureName>/s/ Jane Doe, by power of attorney</signatureName>
    <signatureDate>2024-02-03</signatureDate>
  </ownerSignature>
</ownershipDocument>`

func TestOwnershipParser_Form4(t *testing.T) {
	doc := parseOwnership(t, "4", form4Fixture)

	cover := doc.Section(catalog.SectionCoverDate)
	want := "Document Type: 4\nPeriod of Report: 2024-02-01\nTransaction Date (earliest): 2024-02-01"
	if len(cover.ContentBlocks) != 1 || cover.ContentBlocks[0] != want {
		t.Fatalf("unexpected cover block: %v", cover.ContentBlocks)
	}

	issuer := doc.Section(catalog.SectionIssuer)
	if len(issuer.Tables) != 1 || len(issuer.Tables[0].Rows) != 3 {
		t.Fatalf("unexpected issuer tables: %+v", issuer.Tables)
	}
	if !strings.Contains(issuer.ContentBlocks[0], "|CIK|0000320193|") ||
		!strings.Contains(issuer.ContentBlocks[0], "|Trading Symbol|AAPL|") {
		t.Errorf("issuer markdown incomplete: %q", issuer.ContentBlocks[0])
	}

	owner := doc.Section(catalog.SectionOwner)
	if !strings.Contains(owner.ContentBlocks[0], "|Owner Name|DOE JANE|") ||
		!strings.Contains(owner.ContentBlocks[0], "|Officer Title|Senior Vice President|") {
		t.Errorf("owner markdown incomplete: %q", owner.ContentBlocks[0])
	}

	tableI := doc.Section(catalog.SectionForm4TableI)
	if len(tableI.Tables) != 1 {
		t.Fatalf("expected 1 record in table I, got %d", len(tableI.Tables))
	}
	rows := tableI.Tables[0].Rows
	if len(rows) != 2 {
		t.Fatalf("expected transaction and holding rows, got %v", rows)
	}
	wantTx := []string{"Common Stock", "1000", "185.50", "50000", "D"}
	for i, cell := range wantTx {
		if rows[0][i] != cell {
			t.Errorf("transaction cell %d: expected %q, got %q", i, cell, rows[0][i])
		}
	}
	if rows[1][1] != "" || rows[1][3] != "12000" {
		t.Errorf("holding row should have blank transaction cells: %v", rows[1])
	}

	tableII := doc.Section(catalog.SectionForm4TableII)
	if got := tableII.Tables[0].Rows[0]; got[2] != "0" || got[3] != "2030-01-01" {
		t.Errorf("unexpected derivative row: %v", got)
	}

	notes := doc.Section(catalog.SectionFootnotes)
	wantNotes := []string{
		"[F1] Shares held by family trust.",
		"Remarks: Exercise of vested units.",
	}
	if len(notes.ContentBlocks) != 2 || notes.ContentBlocks[0] != wantNotes[0] || notes.ContentBlocks[1] != wantNotes[1] {
		t.Fatalf("unexpected footnote blocks: %v", notes.ContentBlocks)
	}

	sig := doc.Section(catalog.SectionSignature)
	if len(sig.ContentBlocks) != 1 || sig.ContentBlocks[0] != "/s/ Jane Doe, by power of attorney" {
		t.Errorf("unexpected signature: %v", sig.ContentBlocks)
	}
	if got := doc.Section(catalog.SectionDateSigned).ContentBlocks; len(got) != 1 || got[0] != "2024-02-03" {
		t.Errorf("unexpected date signed: %v", got)
	}

	for _, label := range doc.Labels() {
		if doc.Section(label).Missing {
			t.Errorf("section %q should be present", label)
		}
	}
}

func TestOwnershipParser_Form4EmptyTablesOmitted(t *testing.T) {
	doc := parseOwnership(t, "4", `<ownershipDocument>
  <documentType>4</documentType>
  <periodOfReport>2024-02-01</periodOfReport>
  <nonDerivativeTable></nonDerivativeTable>
</ownershipDocument>`)

	tableI := doc.Section(catalog.SectionForm4TableI)
	if !tableI.Missing || len(tableI.Tables) != 0 || len(tableI.ContentBlocks) != 0 {
		t.Fatalf("empty transaction table must not produce output: %+v", tableI)
	}
	if !doc.Section(catalog.SectionIssuer).Missing {
		t.Error("absent issuer element should leave the section missing")
	}
	if !doc.Section(catalog.SectionSignature).Missing {
		t.Error("absent signature should leave the section missing")
	}
	if doc.Section(catalog.SectionCoverDate).Missing {
		t.Error("cover section should still be present")
	}
}

func TestOwnershipParser_Form5EmptyTableStillRendered(t *testing.T) {
	doc := parseOwnership(t, "5", `<ownershipDocument>
  <schemaVersion>X0508</schemaVersion>
  <documentType>5</documentType>
  <periodOfReport>2023-12-31</periodOfReport>
  <nonDerivativeTable></nonDerivativeTable>
</ownershipDocument>`)

	cover := doc.Section(catalog.SectionCoverPeriod)
	want := "Document Type: 5\nPeriod of Report: 2023-12-31\nSchema Version: X0508"
	if len(cover.ContentBlocks) != 1 || cover.ContentBlocks[0] != want {
		t.Fatalf("unexpected cover block: %v", cover.ContentBlocks)
	}

	tableI := doc.Section(catalog.SectionForm5TableI)
	if tableI.Missing {
		t.Fatal("annual statement renders even with zero holdings")
	}
	if got := tableI.ContentBlocks[0]; got != "|Security Title|Shares Owned|Ownership|\n|---|---|---|" {
		t.Errorf("unexpected header-only markdown: %q", got)
	}
	if len(tableI.Tables) != 1 || len(tableI.Tables[0].Rows) != 0 {
		t.Errorf("expected empty-row record, got %+v", tableI.Tables)
	}

	if !doc.Section(catalog.SectionForm5TableII).Missing {
		t.Error("absent derivative table should leave the section missing")
	}
}

func TestOwnershipParser_Form3Holdings(t *testing.T) {
	doc := parseOwnership(t, "3", `<ownershipDocument>
  <schemaVersion>X0206</schemaVersion>
  <documentType>3</documentType>
  <periodOfReport>2024-05-10</periodOfReport>
  <nonDerivativeTable>
    <nonDerivativeHolding>
      <securityTitle><value>Common Stock</value></securityTitle>
      <postTransactionAmounts>
        <sharesOwnedFollowingTransaction><value>800</value></sharesOwnedFollowingTransaction>
      </postTransactionAmounts>
      <ownershipNature>
        <directOrIndirectOwnership><value>D</value></directOrIndirectOwnership>
      </ownershipNature>
    </nonDerivativeHolding>
  </nonDerivativeTable>
  <derivativeTable>
    <derivativeHolding>
      <securityTitle><value>Stock Option</value></securityTitle>
      <conversionOrExercisePrice><value>42.10</value></conversionOrExercisePrice>
      <underlyingSecurity>
        <underlyingSecurityShares><value>300</value></underlyingSecurityShares>
      </underlyingSecurity>
      <expirationDate><value>2031-05-10</value></expirationDate>
      <ownershipNature>
        <directOrIndirectOwnership><value>D</value></directOrIndirectOwnership>
      </ownershipNature>
    </derivativeHolding>
  </derivativeTable>
</ownershipDocument>`)

	tableI := doc.Section(catalog.SectionForm3TableI)
	if len(tableI.Tables) != 1 {
		t.Fatalf("expected 1 record, got %d", len(tableI.Tables))
	}
	row := tableI.Tables[0].Rows[0]
	if row[0] != "Common Stock" || row[1] != "800" || row[2] != "D" {
		t.Errorf("unexpected holding row: %v", row)
	}
	if !strings.Contains(tableI.ContentBlocks[0], "|Common Stock|800|D|") {
		t.Errorf("markdown missing holding row: %q", tableI.ContentBlocks[0])
	}

	tableII := doc.Section(catalog.SectionForm3TableII)
	wantRow := []string{"Stock Option", "300", "42.10", "2031-05-10", "D"}
	got := tableII.Tables[0].Rows[0]
	for i, cell := range wantRow {
		if got[i] != cell {
			t.Errorf("derivative cell %d: expected %q, got %q", i, cell, got[i])
		}
	}
}

func TestOwnershipParser_NormalizesFieldText(t *testing.T) {
	doc := parseOwnership(t, "4", `<ownershipDocument>
  <documentType>4</documentType>
  <footnotes>
    <footnote id="F1">net&#160;of&#160;tax&#8211;withholding</footnote>
  </footnotes>
</ownershipDocument>`)

	notes := doc.Section(catalog.SectionFootnotes)
	if len(notes.ContentBlocks) != 1 || notes.ContentBlocks[0] != "[F1] net of tax-withholding" {
		t.Fatalf("unexpected footnote normalization: %v", notes.ContentBlocks)
	}
}

func TestOwnershipParser_MalformedXML(t *testing.T) {
	cat, err := catalog.ForForm("4")
	if err != nil {
		t.Fatal(err)
	}
	doc := filing.NewDocument(filing.Meta{FormType: "4"}, cat.Labels)
	p := NewOwnershipParser(cat)
	if err := p.Parse(strings.NewReader("<ownershipDocument><issuer>"), doc); err == nil {
		t.Fatal("expected an error for truncated XML")
	}
}
