//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "gocloud.dev/blob/s3blob"

	"github.com/nudomarinero/DownloadSDSSFindingCharts/internal/testutils"
)

func TestCLIIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0xff, 0xd9}

	t.Log("Starting stub Simbad server...")
	simbad := testutils.StartSimbadServer(t, map[string]testutils.SimbadObject{
		"M31":   {Coordinates: "00 42 44.330  +41 16 07.50", Velocity: "V(km/s) -300.10 [3.90]"},
		"NGC 1": {Coordinates: "00 07 15.860  +27 42 29.70"},
	})
	defer simbad.Close()

	t.Log("Starting stub cutout server...")
	cutout := testutils.StartCutoutServer(t, jpeg, nil)
	defer cutout.Close()

	t.Log("Starting Minio container...")
	minio := testutils.StartMinioContainer(t, ctx, "chart-test-bucket")
	defer func() {
		if err := minio.Close(ctx); err != nil {
			t.Logf("failed to terminate minio container: %v", err)
		}
	}()

	t.Setenv("SDSSCHART_RESOLVER_URL", simbad.URL)
	t.Setenv("SDSSCHART_CUTOUT_URL", cutout.URL)

	// Input with a blank line and padded name: both must be cleaned up.
	inputPath := filepath.Join(t.TempDir(), "objects.txt")
	if err := os.WriteFile(inputPath, []byte("M31\n\n NGC 1 \n"), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	exitCode := runNames([]string{
		"-bucket", minio.BucketURL,
		"-grid", "-label",
		inputPath,
	})
	if exitCode != ExitSuccess {
		t.Fatalf("names failed with exit code %d", exitCode)
	}

	bucket, err := minio.OpenBucket(ctx)
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}
	defer bucket.Close()

	for _, key := range []string{"M31.jpg", "NGC 1.jpg"} {
		data, err := bucket.ReadAll(ctx, key)
		if err != nil {
			t.Fatalf("read %s: %v", key, err)
		}
		if !bytes.Equal(data, jpeg) {
			t.Errorf("%s: stored chart does not match served image", key)
		}
	}
}

func TestCLITableIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jpeg := []byte{0xff, 0xd8, 0xff, 0xd9}

	cutout := testutils.StartCutoutServer(t, jpeg, nil)
	defer cutout.Close()

	minio := testutils.StartMinioContainer(t, ctx, "chart-table-bucket")
	defer func() {
		if err := minio.Close(ctx); err != nil {
			t.Logf("failed to terminate minio container: %v", err)
		}
	}()

	t.Setenv("SDSSCHART_CUTOUT_URL", cutout.URL)

	inputPath := filepath.Join(t.TempDir(), "coords.csv")
	if err := os.WriteFile(inputPath, []byte("obj,ra,dec\nXYZ,10.5,20.3\n"), 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	exitCode := runTable([]string{
		"-bucket", minio.BucketURL,
		inputPath,
	})
	if exitCode != ExitSuccess {
		t.Fatalf("table failed with exit code %d", exitCode)
	}

	bucket, err := minio.OpenBucket(ctx)
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}
	defer bucket.Close()

	exists, err := bucket.Exists(ctx, "XYZ.jpg")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Error("XYZ.jpg was not stored")
	}
}
