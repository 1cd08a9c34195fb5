// Command publish uploads the derived media trees to S3-compatible
// object storage.
//
// It walks the image output tree and then the video output tree,
// mapping each file to the key <prefix>/<relative path> with
// forward-slash separators. An object that already exists in the
// bucket is never re-uploaded or overwritten, so a re-run after a
// partial failure only uploads what is missing. Any transport error
// aborts the run immediately rather than continuing with half the
// tree.
//
// Credentials come from the standard AWS chain: AWS_ACCESS_KEY_ID and
// AWS_SECRET_ACCESS_KEY, or ~/.aws/credentials.
//
// Environment:
//
//	MEDIA_OUT_DIR  - Derived media root (default: scripts/media-out)
//	S3_BUCKET      - Target bucket (default: modelblogbucket)
//	S3_REGION      - Bucket region (default: eu-central-1)
//	S3_ENDPOINT    - S3 endpoint host (default: s3.eu-central-1.amazonaws.com)
//	LOG_LEVEL      - Logging level (debug/info/warn/error)
package main
