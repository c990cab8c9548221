package store

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jpclemente97/MCT4052FinalProject/model"
	"github.com/pkg/errors"
)

// Dynamo keeps one item per drummer in Table, keyed by PK "drummer{N}" with a
// list attribute per histogram column.
type Dynamo struct {
	Client dynamodbiface.DynamoDBAPI
	Table  string
}

type profileItem struct {
	PK                  string    `dynamodbav:"PK"`
	SnareVelocity       []float64 `dynamodbav:"snareVelocity"`
	BassDrumVelocity    []float64 `dynamodbav:"bassDrumVelocity"`
	HiHatVelocity       []float64 `dynamodbav:"hihatVelocity"`
	SnareMicrotiming    []float64 `dynamodbav:"snareMicrotiming"`
	BassDrumMicrotiming []float64 `dynamodbav:"bassDrumMicrotiming"`
	HiHatMicrotiming    []float64 `dynamodbav:"hihatMicrotiming"`
}

// NewDynamo connects to DynamoDB. An empty endpoint uses the default AWS
// resolution; anything else (e.g. http://localhost:8000) points at a local
// instance.
func NewDynamo(table, endpoint string) (*Dynamo, error) {
	cfg := &aws.Config{}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.Region = aws.String("localhost")
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return &Dynamo{Client: dynamodb.New(sess), Table: table}, nil
}

func (d *Dynamo) Load(ctx context.Context, drummerID uint32) (model.GrooveProfile, error) {
	key := drummerKey(drummerID)
	out, err := d.Client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.Table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(key)},
		},
	})
	if err != nil {
		return model.GrooveProfile{}, errors.Wrapf(err, "getting %v from %v", key, d.Table)
	}
	if len(out.Item) == 0 {
		return model.GrooveProfile{}, errors.Wrapf(ErrMissingInput, "%v in %v", key, d.Table)
	}

	var item profileItem
	if err := dynamodbattribute.UnmarshalMap(out.Item, &item); err != nil {
		return model.GrooveProfile{}, errors.Wrapf(ErrMalformedTable, "%v: %v", key, err)
	}

	p := model.GrooveProfile{
		Velocity: map[model.InstrumentGroup][]float64{
			model.Snare:    item.SnareVelocity,
			model.BassDrum: item.BassDrumVelocity,
			model.HiHat:    item.HiHatVelocity,
		},
		Microtiming: map[model.InstrumentGroup][]float64{
			model.Snare:    item.SnareMicrotiming,
			model.BassDrum: item.BassDrumMicrotiming,
			model.HiHat:    item.HiHatMicrotiming,
		},
	}
	if err := checkProfile(p); err != nil {
		return p, errors.Wrapf(ErrMalformedTable, "%v: %v", key, err)
	}
	return p, nil
}

func (d *Dynamo) Save(ctx context.Context, drummerID uint32, profile model.GrooveProfile) error {
	if err := checkProfile(profile); err != nil {
		return err
	}
	key := drummerKey(drummerID)
	av, err := dynamodbattribute.MarshalMap(profileItem{
		PK:                  key,
		SnareVelocity:       profile.Velocity[model.Snare],
		BassDrumVelocity:    profile.Velocity[model.BassDrum],
		HiHatVelocity:       profile.Velocity[model.HiHat],
		SnareMicrotiming:    profile.Microtiming[model.Snare],
		BassDrumMicrotiming: profile.Microtiming[model.BassDrum],
		HiHatMicrotiming:    profile.Microtiming[model.HiHat],
	})
	if err != nil {
		return errors.Wrapf(err, "encoding %v", key)
	}
	_, err = d.Client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.Table),
		Item:      av,
	})
	return errors.Wrapf(err, "putting %v into %v", key, d.Table)
}
