package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signpubliq/internal/domain/entity"
)

func file(name, mime string, size int) entity.IncomingFile {
	return entity.IncomingFile{Name: name, MimeType: mime, Content: make([]byte, size)}
}

func TestUploadPolicyAcceptsSupportedFormats(t *testing.T) {
	p := DefaultUploadPolicy()

	accepted, rejected, err := p.Validate([]entity.IncomingFile{
		file("contract.pdf", "application/pdf", 1024),
		file("scan.JPG", "", 1024),
		file("photo.png", "image/png", 1024),
		file("letter.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", 1024),
	}, 0)

	require.NoError(t, err)
	assert.Len(t, accepted, 4)
	assert.Empty(t, rejected)
}

func TestUploadPolicyRejectsUnsupportedAndOversized(t *testing.T) {
	p := DefaultUploadPolicy()

	accepted, rejected, err := p.Validate([]entity.IncomingFile{
		file("malware.exe", "application/octet-stream", 10),
		file("notes.txt", "text/plain", 10),
		file("big.pdf", "application/pdf", int(p.MaxFileBytes)+1),
		file("ok.pdf", "application/pdf", 512),
	}, 0)

	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, "ok.pdf", accepted[0].Name)
	assert.Len(t, rejected, 3)
}

func TestUploadPolicyEnvelopeCeilingRejectsWholeBatch(t *testing.T) {
	p := UploadPolicy{
		MaxFileBytes:     100,
		MaxEnvelopeBytes: 150,
		AcceptedExts:     []string{"pdf"},
	}

	accepted, rejected, err := p.Validate([]entity.IncomingFile{
		file("a.pdf", "", 90),
		file("b.pdf", "", 90),
	}, 0)

	assert.ErrorIs(t, err, entity.ErrValidation)
	assert.Nil(t, accepted)
	assert.Nil(t, rejected)
}

func TestUploadPolicyCountsAlreadyStagedBytes(t *testing.T) {
	p := UploadPolicy{
		MaxFileBytes:     100,
		MaxEnvelopeBytes: 150,
		AcceptedExts:     []string{"pdf"},
	}

	_, _, err := p.Validate([]entity.IncomingFile{file("a.pdf", "", 90)}, 100)
	assert.ErrorIs(t, err, entity.ErrValidation)

	accepted, _, err := p.Validate([]entity.IncomingFile{file("a.pdf", "", 40)}, 100)
	require.NoError(t, err)
	assert.Len(t, accepted, 1)
}

func TestWillConvert(t *testing.T) {
	assert.True(t, WillConvert("scan.png"))
	assert.True(t, WillConvert("scan.JPEG"))
	assert.True(t, WillConvert("photo.jpg"))
	assert.False(t, WillConvert("contract.pdf"))
	assert.False(t, WillConvert("letter.docx"))
	assert.False(t, WillConvert("noext"))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "pdf", Extension("a.b.PDF"))
	assert.Equal(t, "", Extension("noext"))
	assert.Equal(t, "", Extension("trailing."))
}
