package catalog

import "regexp"

const defaultSubheadingWords = 12

// stdItem anchors headings like "Item 7." or "ITEM 1A"; the id is one or
// two digits with an optional letter suffix.
var stdItem = regexp.MustCompile(`(?i)item\s+(\d{1,2}[a-z]?)`)

// Current-report items are keyed by their dotted number. Labels carry the
// bare "1.01" form while filing headings write "Item 1.01", so the two
// sides need different anchors.
var (
	dottedLabelItem   = regexp.MustCompile(`(\d{1,2}\.\d{2})`)
	dottedHeadingItem = regexp.MustCompile(`(?i)item\s+(\d{1,2}\.?[A-Za-z0-9]*)`)
)

// Section labels shared by the ownership forms (3, 4, 5). The HTML form
// catalogs never need label constants because their sections are only
// reached through Match.
const (
	SectionCoverDate    = "Cover Page & Statement Date"
	SectionCoverPeriod  = "Cover Page & Statement Period"
	SectionIssuer       = "Issuer Information"
	SectionOwner        = "Reporting Owner Information"
	SectionFootnotes    = "Footnotes/Remarks"
	SectionSignature    = "Signature"
	SectionDateSigned   = "Date Signed"
	SectionForm3TableI  = "Table I – Non-Derivative Securities Beneficially Owned"
	SectionForm3TableII = "Table II – Derivative Securities Beneficially Owned"
	SectionForm4TableI  = "Table I – Non-Derivative Securities Acquired/Disposed/Owned"
	SectionForm4TableII = "Table II – Derivative Securities Acquired/Disposed/Owned"
	SectionForm5TableI  = "Table I – Annual Statement of Non-Derivative Securities"
	SectionForm5TableII = "Table II – Annual Statement of Derivative Securities"
)

var catalogs = map[string]*Catalog{
	"10-K": newCatalog("10-K", []string{
		"Cover Page",
		"Table of Contents",
		"Forward-Looking Statements",
		"Part I – Item 1. Business",
		"Part I – Item 1A. Risk Factors",
		"Part I – Item 1B. Unresolved Staff Comments",
		"Part I – Item 1C. Cybersecurity",
		"Part I – Item 2. Properties",
		"Part I – Item 3. Legal Proceedings",
		"Part I – Item 4. Mine Safety Disclosures",
		"Part II – Item 5. Market for Registrants Common Equity, Related Stockholder Matters & Issuer Purchases of Equity Securities",
		"Part II – Item 6. [Reserved]",
		"Part II – Item 7. Management's Discussion & Analysis (MD&A)",
		"Part II – Item 7A. Quantitative & Qualitative Disclosures About Market Risk",
		"Part II – Item 8. Financial Statements & Supplementary Data",
		"Part II – Item 9. Changes in & Disagreements With Accountants",
		"Part II – Item 9A. Controls & Procedures",
		"Part II – Item 9B. Other Information",
		"Part II – Item 9C. Foreign Jurisdiction Audit Inspection Disclosure",
		"Part III – Item 10. Directors, Executive Officers & Corporate Governance",
		"Part III – Item 11. Executive Compensation",
		"Part III – Item 12. Security Ownership of Certain Beneficial Owners & Management",
		"Part III – Item 13. Certain Relationships & Related Transactions",
		"Part III – Item 14. Principal Accounting Fees & Services",
		"Part IV – Item 15. Exhibits & Financial-Statement Schedules",
		"Part IV – Item 16. Form 10-K Summary",
		"Certifications",
		"Signatures",
		"Exhibits Index",
	}, 12, TableMarkdown, stdItem, stdItem),

	"10-Q": newCatalog("10-Q", []string{
		"Cover Page",
		"Table of Contents",
		"Forward-Looking Statements",
		"Part I – Item 1. Financial Statements",
		"Part I – Item 2. MD&A",
		"Part I – Item 3. Quantitative & Qualitative Disclosures About Market Risk",
		"Part I – Item 4. Controls & Procedures",
		"Part II – Item 1. Legal Proceedings",
		"Part II – Item 1A. Risk Factors",
		"Part II – Item 2. Unregistered Sales of Equity Securities & Use of Proceeds",
		"Part II – Item 3. Defaults upon Senior Securities",
		"Part II – Item 4. Mine Safety Disclosures",
		"Part II – Item 5. Other Information",
		"Part II – Item 6. Exhibits",
		"Certifications",
		"Signatures",
		"Exhibits Index",
	}, 15, TableStructJSON, stdItem, stdItem),

	"8-K": newCatalog("8-K", []string{
		"Cover Page",
		"Filing Date",
		"Event Date",
		"Section 1 – 1.01 Entry into a Material Definitive Agreement",
		"Section 1 – 1.02 Termination of a Material Definitive Agreement",
		"Section 1 – 1.03 Bankruptcy or Receivership",
		"Section 1 – 1.04 Mine Safety — Shutdowns & Patterns of Violations",
		"Section 1 – 1.05 Material Cybersecurity Incidents",
		"Section 2 – 2.01 Completion of Acquisition or Disposition of Assets",
		"Section 2 – 2.02 Results of Operations & Financial Condition",
		"Section 2 – 2.03 Creation of a Direct Financial Obligation or Off-Balance Sheet Obligation",
		"Section 2 – 2.04 Triggering Events That Accelerate or Increase a Direct Financial Obligation",
		"Section 2 – 2.05 Costs Associated with Exit or Disposal Activities",
		"Section 2 – 2.06 Material Impairments",
		"Section 3 – 3.01 Notice of Delisting or Transfer of Listing",
		"Section 3 – 3.02 Unregistered Sales of Equity Securities",
		"Section 3 – 3.03 Material Modification to Rights of Security Holders",
		"Section 4 – 4.01 Changes in Registrant’s Certifying Accountant",
		"Section 4 – 4.02 Non-Reliance on Previously Issued Financial Statements",
		"Section 5 – 5.01 Changes in Control of Registrant",
		"Section 5 – 5.02 Director/Officer Changes & Compensation Arrangements",
		"Section 5 – 5.03 Charter/By-Law Amendments; Fiscal Year Change",
		"Section 5 – 5.04 Trading-Plan Suspension",
		"Section 5 – 5.05 Code of Ethics Amendment or Waiver",
		"Section 5 – 5.06 Change in Shell Company Status",
		"Section 5 – 5.07 Submission of Matters to a Vote of Security Holders",
		"Section 5 – 5.08 Shareholder Director Nominations",
		"Section 6 – 6.01 ABS Informational & Computational Material",
		"Section 6 – 6.02 Change of Servicer or Trustee",
		"Section 6 – 6.03 Change in Credit Enhancement or Other External Support",
		"Section 6 – 6.04 Failure to Make a Required Distribution",
		"Section 6 – 6.05 Securities Act Updating Disclosure",
		"Section 7 – 7.01 Regulation FD Disclosure",
		"Section 8 – 8.01 Other Events",
		"Section 9 – 9.01 Financial Statements & Exhibits",
		"Exhibits Index",
	}, 12, TablePlaceholder, dottedLabelItem, dottedHeadingItem),

	"DEF 14A": newCatalog("DEF 14A", []string{
		"Cover Page",
		"Item 1. Date, Time & Place Information",
		"Item 2. Revocability of Proxy",
		"Item 3. Dissenters’ Right of Appraisal",
		"Item 4. Persons Making the Solicitation",
		"Item 5. Interest of Certain Persons in Matters to Be Acted Upon",
		"Item 6. Voting Securities & Principal Holders",
		"Item 7. Directors & Executive Officers",
		"Item 8. Compensation of Directors & Executive Officers",
		"Compensation Discussion and Analysis (CD&A)",
		"Pay Ratio Disclosure",
		"Item 9. Independent Public Accountants",
		"Item 10. Compensation Plans & Arrangements",
		"Item 11. Authorization or Issuance of Securities Other Than for Exchange",
		"Item 12. Modification or Exchange of Securities",
		"Item 13. Financial & Other Information (Merger/Acquisition Context)",
		"Item 14. Mergers, Consolidations, Acquisitions & Similar Matters",
		"Item 15. Acquisition or Disposition of Property",
		"Item 16. Restatement of Accounts",
		"Item 17. Action with Respect to Reports",
		"Item 18. Matters Not Required to Be Submitted",
		"Item 19. Amendment of Charter, By-laws or Other Documents",
		"Item 20. Other Proposed Action",
		"Item 21. Voting Procedures",
		"Item 22. Information Required in Investment-Company Proxy Statements",
		"Signatures",
		"Exhibits Index",
	}, 12, TableMarkdown, stdItem, stdItem),

	"3": newXMLCatalog("3", []string{
		SectionCoverDate,
		SectionIssuer,
		SectionOwner,
		SectionForm3TableI,
		SectionForm3TableII,
		SectionFootnotes,
		SectionSignature,
		SectionDateSigned,
	}),

	"4": newXMLCatalog("4", []string{
		SectionCoverDate,
		SectionIssuer,
		SectionOwner,
		SectionForm4TableI,
		SectionForm4TableII,
		SectionFootnotes,
		SectionSignature,
		SectionDateSigned,
	}),

	"5": newXMLCatalog("5", []string{
		SectionCoverPeriod,
		SectionIssuer,
		SectionOwner,
		SectionForm5TableI,
		SectionForm5TableII,
		SectionFootnotes,
		SectionDateSigned,
		SectionSignature,
	}),
}
