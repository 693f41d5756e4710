package stratech

import "context"

// DocumentVersion is the version information document.
const DocumentVersion = 1

// SystemService exposes informational documents of the backend.
type SystemService interface {
	// Version asks the backend for its version information. It's used to
	// probe the connection and takes no part in the booking import.
	Version(ctx context.Context) (data *Data, ok bool, err error)
}

// SystemServiceOp implements SystemService.
type SystemServiceOp struct {
	client *Client
}

var _ SystemService = (*SystemServiceOp)(nil)

// Version implements SystemService.
func (s *SystemServiceOp) Version(ctx context.Context) (*Data, bool, error) {
	resp, err := s.client.SendRequest(ctx, DocumentVersion, []byte("<DATA/>"), DefaultVersion)
	if err != nil {
		return nil, false, err
	}
	if resp.Data.Unknown() {
		return nil, false, nil
	}
	return &resp.Data, true, nil
}
