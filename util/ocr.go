package util

import (
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/rekognition"
)

// platePattern matches number-plate shaped lines such as "WP ABC-1234" or
// "CAB 5678": letter groups followed by a 3-4 digit serial.
var platePattern = regexp.MustCompile(`^[A-Z]{1,3}(?:[ -][A-Z]{1,4})?[ -]?\d{3,4}$`)

// NewRekognitionClient is...
func NewRekognitionClient() *rekognition.Rekognition {
	region := GoDotEnvVariable("AWS_REGION")
	if region == "" {
		region = "ap-south-1"
	}
	sess := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(region),
	}))
	return rekognition.New(sess)
}

// DetectPlate sends image bytes to Rekognition text detection and picks the
// plate out of the result.
func DetectPlate(svc *rekognition.Rekognition, image []byte) (string, float64, error) {
	out, err := svc.DetectText(&rekognition.DetectTextInput{
		Image: &rekognition.Image{Bytes: image},
	})
	if err != nil {
		return "", 0, err
	}
	plate, confidence := ExtractPlate(out.TextDetections)
	return plate, confidence, nil
}

// ExtractPlate returns the highest-confidence LINE detection that looks like a
// number plate, or the highest-confidence line of any shape when nothing
// matches. The inspector confirms the plate on screen either way.
func ExtractPlate(detections []*rekognition.TextDetection) (string, float64) {
	var plate, fallback string
	var plateConf, fallbackConf float64
	for _, d := range detections {
		if aws.StringValue(d.Type) != rekognition.TextTypesLine {
			continue
		}
		text := strings.ToUpper(strings.TrimSpace(aws.StringValue(d.DetectedText)))
		conf := aws.Float64Value(d.Confidence)
		if platePattern.MatchString(text) && conf > plateConf {
			plate, plateConf = text, conf
		}
		if conf > fallbackConf {
			fallback, fallbackConf = text, conf
		}
	}
	if plate != "" {
		return plate, plateConf
	}
	return fallback, fallbackConf
}
