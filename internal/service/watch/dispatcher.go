package watch

import (
	"context"
	"fmt"
	"sync"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
	"github.com/darkkaiser/tgtg-watcher/internal/pkg/metrics"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
	applog "github.com/darkkaiser/tgtg-watcher/pkg/log"
)

const dispatcherComponent = "watch.dispatcher"

// Dispatcher 스냅샷마다 변경 목록을 계산하고 활성화된 채널로 알림을 보냅니다.
type Dispatcher struct {
	differ    *Differ
	formatter *Formatter
	channels  []contract.Channel
	recorder  *metrics.Recorder

	wg sync.WaitGroup
}

// NewDispatcher Dispatcher를 생성합니다. recorder는 nil일 수 있습니다.
func NewDispatcher(differ *Differ, formatter *Formatter, channels []contract.Channel, recorder *metrics.Recorder) *Dispatcher {
	if differ == nil {
		panic("Differ는 필수입니다")
	}
	if formatter == nil {
		panic("Formatter는 필수입니다")
	}

	return &Dispatcher{
		differ:    differ,
		formatter: formatter,
		channels:  channels,
		recorder:  recorder,
	}
}

// OnSnapshot 새 스냅샷을 처리합니다.
//
//  1. 직전 스냅샷과 비교하여 알림 대상 변경 목록을 구합니다.
//  2. 텍스트와 HTML 문구를 만듭니다. (비어 있을 수 있음)
//  3. 콘솔 채널이 활성화되어 있으면 바로 출력합니다. (빈 문구는 출력하지 않음)
//  4. 웹훅은 변경이 있고 직전 스냅샷이 존재했던 경우에만 전송합니다.
//  5. 그 외 채널은 변경이 있을 때만 전송합니다.
//
// 콘솔을 제외한 채널 전송은 비동기로 수행되며 결과를 기다리지 않습니다.
// 한 채널의 실패는 다른 채널의 전송에 영향을 주지 않습니다.
func (d *Dispatcher) OnSnapshot(ctx context.Context, cfg *config.AppConfig, current contract.Snapshot) DiffResult {
	result := d.differ.Diff(current, cfg.MessageFilter)

	for _, c := range result.Changes {
		d.recorder.RecordChange(c.Category.Label())
	}

	text, textErr := d.formatter.FormatText(result.Changes)
	htmlText, htmlErr := d.formatter.FormatHTML(result.Changes)

	// 두 형식은 같은 상품에서 함께 실패하므로 한 번만 기록한다.
	formatErr := textErr
	if formatErr == nil {
		formatErr = htmlErr
	}
	if formatErr != nil {
		applog.WithComponent(dispatcherComponent).WithError(formatErr).Error("일부 상품의 데이터가 올바르지 않아 알림 문구에서 제외되었습니다")
	}

	msg := contract.Message{
		Text:    text,
		HTML:    htmlText,
		Changes: result.Changes,
	}

	hasChanges := len(result.Changes) > 0

	for _, ch := range d.channels {
		if !ch.Enabled(cfg) {
			continue
		}

		switch ch.Kind() {
		case contract.ChannelConsole:
			d.send(ctx, cfg, ch, msg)

		case contract.ChannelWebhook:
			if hasChanges && result.HadBaseline {
				d.sendAsync(ctx, cfg, ch, msg)
			}

		default:
			if hasChanges {
				d.sendAsync(ctx, cfg, ch, msg)
			}
		}
	}

	return result
}

// Wait 진행 중인 비동기 전송이 모두 끝날 때까지 기다립니다.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) sendAsync(ctx context.Context, cfg *config.AppConfig, ch contract.Channel, msg contract.Message) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		d.send(ctx, cfg, ch, msg)
	}()
}

func (d *Dispatcher) send(ctx context.Context, cfg *config.AppConfig, ch contract.Channel, msg contract.Message) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.Newf(apperrors.Internal, "알림 전송 중 panic이 발생하였습니다: %v", r)
		}

		d.recorder.RecordSend(ch.Kind().String(), err)

		if err != nil {
			applog.WithComponentAndFields(dispatcherComponent, applog.Fields{
				"channel": ch.Kind().String(),
				"changes": len(msg.Changes),
			}).WithError(err).Error("알림 전송에 실패하였습니다")
		}
	}()

	if err = ch.Send(ctx, cfg, msg); err != nil {
		err = apperrors.Wrap(err, apperrors.ExecutionFailed, fmt.Sprintf("%s 채널 전송 실패", ch.Kind()))
	}
}
