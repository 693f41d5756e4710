package integration

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

func awsSession(endpoint string) *session.Session {
	config := aws.NewConfig()
	config = config.WithEndpoint(endpoint)
	config = config.WithRegion(awsRegion)
	if *flagDebug {
		config = config.WithLogLevel(aws.LogDebugWithHTTPBody)
	}
	config = config.WithCredentials(credentials.NewStaticCredentials(
		awsAccessKeyID, awsSecretAccessKey, awsTokenKey))
	config.DisableSSL = aws.Bool(true)
	return session.Must(session.NewSession(config))
}

func dynamodbClient() *dynamodb.DynamoDB {
	return dynamodb.New(awsSession(awsDynamoDBEndpoint))
}

// createTrackingTable creates the tracking table unless it exists already.
func createTrackingTable(t *testing.T) {
	t.Helper()
	_, err := awsDynamoDBClient.CreateTable(&dynamodb.CreateTableInput{
		TableName: aws.String(awsTrackingTable),
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{AttributeName: aws.String("reservationID"), AttributeType: aws.String(dynamodb.ScalarAttributeTypeS)},
		},
		KeySchema: []*dynamodb.KeySchemaElement{
			{AttributeName: aws.String("reservationID"), KeyType: aws.String(dynamodb.KeyTypeHash)},
		},
		ProvisionedThroughput: &dynamodb.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(1),
			WriteCapacityUnits: aws.Int64(1),
		},
	})
	if aerr, ok := err.(awserr.Error); ok && aerr.Code() == dynamodb.ErrCodeResourceInUseException {
		return
	}
	if err != nil {
		t.Fatal("Cannot create tracking table: ", err)
	}
}

// trackedReservations returns the reservation numbers in the tracking table.
func trackedReservations(t *testing.T) []string {
	t.Helper()
	var ids []string
	err := awsDynamoDBClient.ScanPages(&dynamodb.ScanInput{
		TableName: aws.String(awsTrackingTable),
	}, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		for _, item := range page.Items {
			if attr, ok := item["reservationID"]; ok && attr.S != nil {
				ids = append(ids, *attr.S)
			}
		}
		return true
	})
	if err != nil {
		t.Fatal("Cannot scan tracking table: ", err)
	}
	return ids
}

// purgeTrackingTable deletes every item of the tracking table.
func purgeTrackingTable(t *testing.T) {
	t.Helper()
	for _, id := range trackedReservations(t) {
		_, err := awsDynamoDBClient.DeleteItem(&dynamodb.DeleteItemInput{
			TableName: aws.String(awsTrackingTable),
			Key: map[string]*dynamodb.AttributeValue{
				"reservationID": {S: aws.String(id)},
			},
		})
		if err != nil {
			t.Fatal("Cannot delete tracking item: ", err)
		}
	}
}
