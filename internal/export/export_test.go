package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []Record{
		{Area: "Welcome", Date: "2024-06-02", Shift: "Morning", Responsible: true, Volunteer: "Ana"},
		{Area: "Welcome", Date: "2024-06-02", Shift: "Morning", Volunteer: "Silva, Bruno"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"area,data,turno,tipo,voluntario\n"+
			"Welcome,2024-06-02,Morning,responsavel,Ana\n"+
			"Welcome,2024-06-02,Morning,equipe,\"Silva, Bruno\"\n",
		buf.String())
}

type fakePutter struct {
	in   *s3.PutObjectInput
	body string
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Archiver_Put(t *testing.T) {
	fp := &fakePutter{}
	a := &S3Archiver{client: fp, bucket: "escalas", prefix: "exports/"}

	key, err := a.Put(context.Background(), "escala-2024-06.csv", []byte("x"), "text/csv")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "exports/"))
	assert.True(t, strings.HasSuffix(key, "-escala-2024-06.csv"))
	assert.Equal(t, "escalas", aws.ToString(fp.in.Bucket))
	assert.Equal(t, key, aws.ToString(fp.in.Key))
	assert.Equal(t, "text/csv", aws.ToString(fp.in.ContentType))
	assert.Equal(t, "x", fp.body)
}

func TestS3Archiver_PutError(t *testing.T) {
	a := &S3Archiver{client: &fakePutter{err: errors.New("denied")}, bucket: "b"}

	_, err := a.Put(context.Background(), "f.csv", nil, "text/csv")
	assert.ErrorContains(t, err, "denied")
}
