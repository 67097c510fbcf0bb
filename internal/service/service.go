package service

import (
	"context"
	"sync"
)

// Service 애플리케이션 생명주기 동안 백그라운드로 실행되는 서비스입니다.
// serviceStopCtx가 취소되면 정리를 마친 뒤 serviceStopWG.Done()을 호출해야 합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
