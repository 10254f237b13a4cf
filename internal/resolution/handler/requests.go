package handler

// ResolveRequest is the body of POST /tasks/{id}/resolve.
type ResolveRequest struct {
	Outcome string `json:"outcome"`
	Remarks string `json:"remarks"`
}

// CertificateRequest is the body of POST /municipal/certificates. Document is
// the base64-encoded certificate image or PDF.
type CertificateRequest struct {
	Document string `json:"document"`
	MimeType string `json:"mimeType"`
}

// DecommissionRequest is the body of POST /municipal/decommission.
type DecommissionRequest struct {
	VoterID string `json:"voterId"`
	Reason  string `json:"reason"`
}
