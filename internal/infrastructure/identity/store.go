package identity

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"filippo.io/age"
	"github.com/lightwallet-tools/zecw/internal/core/domain"
	"github.com/lightwallet-tools/zecw/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

const GenerationNotice = "Generating a new age identity to encrypt the mnemonic phrase"

type store struct {
	notice io.Writer
	now    func() time.Time
}

// NewStore returns an identity store that writes the generation notice to
// notice, usually stderr.
func NewStore(notice io.Writer) ports.IdentityStore {
	if notice == nil {
		notice = io.Discard
	}
	return &store{notice, time.Now}
}

// Obtain loads the age identities of the file at path. If the file does not
// exist, a new X25519 identity is generated and written to it.
func (s *store) Obtain(path string) (*ports.Identity, error) {
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		return parseIdentityFile(path, f)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to open identity file: %w", err)
	}

	return s.generate(path)
}

func (s *store) generate(path string) (*ports.Identity, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("failed to generate age identity: %w", err)
	}
	recipient := identity.Recipient()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity file: %w", err)
	}
	defer f.Close()

	fmt.Fprintln(s.notice, GenerationNotice)

	if _, err := fmt.Fprintf(
		f, "# created: %s\n# public key: %s\n%s\n",
		s.now().Format(time.RFC3339), recipient, identity,
	); err != nil {
		return nil, fmt.Errorf("failed to write identity file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return nil, fmt.Errorf("failed to write identity file: %w", err)
	}

	log.WithField("path", path).Debug("age identity generated")

	return &ports.Identity{
		Path:       path,
		Identities: []age.Identity{identity},
		Recipients: []age.Recipient{recipient},
		Generated:  true,
	}, nil
}

func parseIdentityFile(path string, r io.Reader) (*ports.Identity, error) {
	identities, err := age.ParseIdentities(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrIdentityFileInvalid, err)
	}

	recipients := make([]age.Recipient, 0, len(identities))
	for _, id := range identities {
		if x, ok := id.(*age.X25519Identity); ok {
			recipients = append(recipients, x.Recipient())
		}
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf(
			"%w: no X25519 identity to derive a recipient from",
			domain.ErrIdentityFileInvalid,
		)
	}

	return &ports.Identity{
		Path:       path,
		Identities: identities,
		Recipients: recipients,
	}, nil
}
