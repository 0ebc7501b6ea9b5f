package util

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// NewDynamoClient builds a DynamoDB client from the AWS environment
// credentials. Inspector records live in the table named by INSPECTORS_TABLE.
func NewDynamoClient() *dynamodb.DynamoDB {
	region := GoDotEnvVariable("AWS_REGION")
	if region == "" {
		region = "ap-south-1"
	}
	sess := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(region),
	}))
	return dynamodb.New(sess)
}

// InspectorsTable is...
func InspectorsTable() string {
	table := GoDotEnvVariable("INSPECTORS_TABLE")
	if table == "" {
		table = "citypark-inspectors"
	}
	return table
}
