package gateway

// dublinCoreLabels maps DCMI term names to their display labels. Only RDF
// properties present here survive the Zotero import.
var dublinCoreLabels = map[string]string{
	"abstract":                     "Abstract",
	"accessRights":                 "Access Rights",
	"accrualMethod":                "Accrual Method",
	"accrualPeriodicity":           "Accrual Periodicity",
	"accrualPolicy":                "Accrual Policy",
	"alternative":                  "Alternative Title",
	"audience":                     "Audience",
	"available":                    "Date Available",
	"bibliographicCitation":        "Bibliographic Citation",
	"conformsTo":                   "Conforms To",
	"contributor":                  "Contributor",
	"coverage":                     "Coverage",
	"created":                      "Date Created",
	"creator":                      "Creator",
	"date":                         "Date",
	"dateAccepted":                 "Date Accepted",
	"dateCopyrighted":              "Date Copyrighted",
	"dateSubmitted":                "Date Submitted",
	"educationLevel":               "Audience Education Level",
	"extent":                       "Extent",
	"format":                       "Format",
	"hasFormat":                    "Has Format",
	"hasPart":                      "Has Part",
	"hasVersion":                   "Has Version",
	"identifier":                   "Identifier",
	"instructionalMethod":          "Instructional Method",
	"isFormatOf":                   "Is Format Of",
	"isPartOf":                     "Is Part Of",
	"isReferencedBy":               "Is Referenced By",
	"isReplacedBy":                 "Is Replaced By",
	"isRequiredBy":                 "Is Required By",
	"issued":                       "Date Issued",
	"isVersionOf":                  "Is Version Of",
	"language":                     "Language",
	"license":                      "License",
	"mediator":                     "Mediator",
	"medium":                       "Medium",
	"modified":                     "Date Modified",
	"provenance":                   "Provenance",
	"publisher":                    "Publisher",
	"references":                   "References",
	"relation":                     "Relation",
	"replaces":                     "Replaces",
	"requires":                     "Requires",
	"rights":                       "Rights",
	"rightsHolder":                 "Rights Holder",
	"source":                       "Source",
	"spatial":                      "Spatial Coverage",
	"subject":                      "Subject",
	"tableOfContents":              "Table Of Contents",
	"temporal":                     "Temporal Coverage",
	"valid":                        "Date Valid",
	"description":                  "Description",
	"title":                        "Title",
	"type":                         "Type",
	"DCMIType":                     "DCMI Type Vocabulary",
	"DDC":                          "DDC",
	"IMT":                          "IMT",
	"LCC":                          "LCC",
	"LCSH":                         "LCSH",
	"MESH":                         "MeSH",
	"NLM":                          "NLM",
	"TGN":                          "TGN",
	"UDC":                          "UDC",
	"Box":                          "DCMI Box",
	"ISO3166":                      "ISO 3166",
	"ISO639-2":                     "ISO 639-2",
	"ISO639-3":                     "ISO 639-3",
	"Period":                       "DCMI Period",
	"Point":                        "DCMI Point",
	"RFC1766":                      "RFC 1766",
	"RFC3066":                      "RFC 3066",
	"RFC4646":                      "RFC 4646",
	"RFC5646":                      "RFC 5646",
	"URI":                          "URI",
	"W3CDTF":                       "W3C-DTF",
	"Agent":                        "Agent",
	"AgentClass":                   "Agent Class",
	"BibliographicResource":        "Bibliographic Resource",
	"FileFormat":                   "File Format",
	"Frequency":                    "Frequency",
	"Jurisdiction":                 "Jurisdiction",
	"LicenseDocument":              "License Document",
	"LinguisticSystem":             "Linguistic System",
	"Location":                     "Location",
	"LocationPeriodOrJurisdiction": "Location, Period, or Jurisdiction",
	"MediaType":                    "Media Type",
	"MediaTypeOrExtent":            "Media Type or Extent",
	"MethodOfAccrual":              "Method of Accrual",
	"MethodOfInstruction":          "Method of Instruction",
	"PeriodOfTime":                 "Period of Time",
	"PhysicalMedium":               "Physical Medium",
	"PhysicalResource":             "Physical Resource",
	"Policy":                       "Policy",
	"ProvenanceStatement":          "Provenance Statement",
	"RightsStatement":              "Rights Statement",
	"SizeOrDuration":               "Size or Duration",
	"Standard":                     "Standard",
	"Collection":                   "Collection",
	"Dataset":                      "Dataset",
	"Event":                        "Event",
	"Image":                        "Image",
	"InteractiveResource":          "Interactive Resource",
	"MovingImage":                  "Moving Image",
	"PhysicalObject":               "Physical Object",
	"Service":                      "Service",
	"Software":                     "Software",
	"Sound":                        "Sound",
	"StillImage":                   "Still Image",
	"Text":                         "Text",
	"domainIncludes":               "Domain Includes",
	"memberOf":                     "Member Of",
	"rangeIncludes":                "Range Includes",
	"VocabularyEncodingScheme":     "Vocabulary Encoding Scheme",
}
