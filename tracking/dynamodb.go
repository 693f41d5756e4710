package tracking

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/pkg/errors"
)

// createdLayout matches the DATETIME literals of the SQL tracking table.
const createdLayout = "2006-01-02 15:04:05"

type dynamoDBStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

var _ Store = (*dynamoDBStore)(nil)

// NewDynamoDBStore returns a Store backed by a DynamoDB table whose hash key
// is the string attribute "reservationID".
func NewDynamoDBStore(client dynamodbiface.DynamoDBAPI, table string) Store {
	if table == "" {
		table = DefaultTable
	}
	return &dynamoDBStore{client: client, table: table}
}

type dynamoDBItem struct {
	ReservationID string `dynamodbav:"reservationID"`
	Created       string `dynamodbav:"created"`
}

func (s *dynamoDBStore) IsProcessed(ctx context.Context, reservationID string) (bool, error) {
	output, err := s.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		ConsistentRead: aws.Bool(true),
		Key: map[string]*dynamodb.AttributeValue{
			"reservationID": {S: aws.String(reservationID)},
		},
	})
	if err != nil {
		return false, errors.Wrapf(err, "error looking up reservation %s", reservationID)
	}
	return output.Item != nil, nil
}

func (s *dynamoDBStore) Track(ctx context.Context, r Record) error {
	item, err := dynamodbattribute.MarshalMap(dynamoDBItem{
		ReservationID: r.ReservationID,
		Created:       r.Created.Format(createdLayout),
	})
	if err != nil {
		return err
	}
	_, err = s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return errors.Wrapf(err, "error tracking reservation %s", r.ReservationID)
}

func (s *dynamoDBStore) Close() error {
	return nil
}
