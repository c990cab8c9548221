package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jpclemente97/MCT4052FinalProject/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile() model.GrooveProfile {
	p := model.NewGrooveProfile()
	for i, g := range model.FeatureOrder {
		p.Velocity[g][8+i] = 0.75
		p.Velocity[g][2] = 0.25
		p.Microtiming[g][5] = 0.6
		p.Microtiming[g][4+i] += 0.4
	}
	// raw tables may carry small negatives
	p.Microtiming[model.HiHat][0] = -0.001
	return p
}

func TestCSVRoundTrip(t *testing.T) {
	s := CSV{Dir: filepath.Join(t.TempDir(), "histograms")}
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, 7, profile()))
	assert.FileExists(t, filepath.Join(s.Dir, "drummer7Velocity.csv"))
	assert.FileExists(t, filepath.Join(s.Dir, "drummer7Microtiming.csv"))

	p, err := s.Load(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, profile(), p)
}

func TestCSVColumnsCanBeInAnyOrder(t *testing.T) {
	dir := t.TempDir()
	s := CSV{Dir: dir}
	require.NoError(t, s.Save(context.Background(), 1, profile()))

	velocity := "hihatVelocity,snareVelocity,bassDrumVelocity\n"
	for i := 0; i < model.VelocityBins; i++ {
		velocity += "0.5,0.25,1\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drummer1Velocity.csv"), []byte(velocity), 0644))

	p, err := s.Load(context.Background(), 1)
	require.NoError(t, err)
	assert := assert.New(t)
	assert.Equal(0.25, p.Velocity[model.Snare][0])
	assert.Equal(1.0, p.Velocity[model.BassDrum][15])
	assert.Equal(0.5, p.Velocity[model.HiHat][3])
}

func TestCSVErrors(t *testing.T) {
	dir := t.TempDir()
	s := CSV{Dir: dir}
	ctx := context.Background()

	_, err := s.Load(ctx, 2)
	assert.True(t, errors.Is(err, ErrMissingInput))

	require.NoError(t, s.Save(ctx, 2, profile()))
	tests := map[string]string{
		"too few rows":   "snareMicrotiming,bassDrumMicrotiming,hihatMicrotiming\n0,0,0\n",
		"missing column": "snareMicrotiming,bassDrumMicrotiming\n0,0\n0,0\n0,0\n0,0\n0,0\n0,0\n0,0\n0,0\n0,0\n0,0\n",
		"not a number":   "snareMicrotiming,bassDrumMicrotiming,hihatMicrotiming\nx,0,0\n0,0,0\n0,0,0\n0,0,0\n0,0,0\n0,0,0\n0,0,0\n0,0,0\n0,0,0\n0,0,0\n",
		"ragged":         "snareMicrotiming,bassDrumMicrotiming,hihatMicrotiming\n0,0\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(filepath.Join(dir, "drummer2Microtiming.csv"), []byte(body), 0644))
			_, err := s.Load(ctx, 2)
			assert.True(t, errors.Is(err, ErrMalformedTable), "%v", err)
		})
	}
}

func TestSaveRejectsWrongShape(t *testing.T) {
	p := profile()
	p.Velocity[model.Snare] = p.Velocity[model.Snare][:3]
	assert.Error(t, CSV{Dir: t.TempDir()}.Save(context.Background(), 1, p))
	assert.Error(t, (&Dynamo{Client: newFakeDynamo(), Table: "t"}).Save(context.Background(), 1, p))
}

type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items map[string]map[string]*dynamodb.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]*dynamodb.AttributeValue)}
}

func (f *fakeDynamo) GetItemWithContext(ctx aws.Context, in *dynamodb.GetItemInput, _ ...request.Option) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[*in.TableName+"/"+*in.Key["PK"].S]}, nil
}

func (f *fakeDynamo) PutItemWithContext(ctx aws.Context, in *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	f.items[*in.TableName+"/"+*in.Item["PK"].S] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func TestDynamoRoundTrip(t *testing.T) {
	client := newFakeDynamo()
	s := &Dynamo{Client: client, Table: "groove-histograms"}
	ctx := context.Background()

	_, err := s.Load(ctx, 9)
	assert.True(t, errors.Is(err, ErrMissingInput))

	require.NoError(t, s.Save(ctx, 9, profile()))
	item := client.items["groove-histograms/drummer9"]
	require.NotNil(t, item)
	assert.Len(t, item["snareVelocity"].L, model.VelocityBins)

	p, err := s.Load(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, profile(), p)
}

func TestDynamoMalformedItem(t *testing.T) {
	client := newFakeDynamo()
	client.items["t/drummer1"] = map[string]*dynamodb.AttributeValue{
		"PK":            {S: aws.String("drummer1")},
		"snareVelocity": {L: []*dynamodb.AttributeValue{{N: aws.String("1")}}},
	}
	_, err := (&Dynamo{Client: client, Table: "t"}).Load(context.Background(), 1)
	assert.True(t, errors.Is(err, ErrMalformedTable))
}

var _ Store = CSV{}
var _ Store = &Dynamo{}
