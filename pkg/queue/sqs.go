package queue

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/aws/aws-sdk-go/service/sqs/sqsiface"
	"github.com/jqs7/regex/pkg/model"
	"github.com/jqs7/regex/pkg/utils"
	"golang.org/x/xerrors"
)

type SQS struct {
	sqs sqsiface.SQSAPI
}

func NewSQS(p client.ConfigProvider) *SQS {
	return &SQS{
		sqs: sqs.New(p),
	}
}

// SendMsg JSON encodes body onto queue. SQS caps the delay at 15 minutes.
func (s SQS) SendMsg(ctx context.Context, queue string, body interface{}, delaySec int64) error {
	if delaySec > model.MaxQueueDelaySecond {
		delaySec = model.MaxQueueDelaySecond
	}
	_, err := s.sqs.SendMessageWithContext(ctx, &sqs.SendMessageInput{
		DelaySeconds: aws.Int64(delaySec),
		MessageBody:  aws.String(utils.EncodeToString(body)),
		QueueUrl:     &queue,
	})
	if err != nil {
		return xerrors.Errorf("发送消息至 %s 失败: %w", queue, err)
	}
	return nil
}
