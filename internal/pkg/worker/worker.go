package worker

import (
	"log"
	"namaste_cart/internal/pkg/mailer"
	"time"
)

// MailTask 一封待发送的邮件
type MailTask struct {
	To      string
	Subject string
	HTML    string
	Retry   int // 重试次数
}

// MailPool 邮件发送协程池
// 发邮件是慢 IO，不能阻塞请求协程
type MailPool struct {
	TaskQueue  chan MailTask
	RetryQueue chan MailTask // 重试队列
	Mailer     mailer.Mailer
	WorkerNum  int
	MaxRetry   int // 最大重试次数
}

func NewMailPool(m mailer.Mailer, workerNum int, bufferSize int) *MailPool {
	return &MailPool{
		TaskQueue:  make(chan MailTask, bufferSize),
		RetryQueue: make(chan MailTask, bufferSize/2),
		Mailer:     m,
		WorkerNum:  workerNum,
		MaxRetry:   3, // 最多重试3次
	}
}

func (p *MailPool) Start() {
	for i := 0; i < p.WorkerNum; i++ {
		go p.worker(i)
	}
	// 启动重试处理协程
	go p.retryWorker()
	log.Printf("Mail pool started with %d workers", p.WorkerNum)
}

func (p *MailPool) worker(id int) {
	for task := range p.TaskQueue {
		if err := p.Mailer.Send(task.To, task.Subject, task.HTML); err != nil {
			log.Printf("[MailWorker %d] Failed to send mail to %s: %v", id, task.To, err)

			// 如果未达到最大重试次数，加入重试队列
			if task.Retry < p.MaxRetry {
				task.Retry++
				select {
				case p.RetryQueue <- task:
					log.Printf("[MailWorker %d] Mail re-queued (attempt %d/%d)", id, task.Retry, p.MaxRetry)
				default:
					log.Printf("[MailWorker %d] Retry queue full, mail dropped: %s", id, task.To)
					p.logFailedTask(task, err)
				}
			} else {
				log.Printf("[MailWorker %d] Mail exceeded max retries, dropped: %s", id, task.To)
				p.logFailedTask(task, err)
			}
		}
	}
}

func (p *MailPool) retryWorker() {
	for task := range p.RetryQueue {
		// 延迟重试，避免立即重试
		time.Sleep(time.Duration(task.Retry) * time.Second)

		select {
		case p.TaskQueue <- task:
		default:
			log.Printf("[RetryWorker] Main queue full, mail dropped: %s", task.To)
			p.logFailedTask(task, nil)
		}
	}
}

func (p *MailPool) logFailedTask(task MailTask, err error) {
	log.Printf("[DeadLetter] Mail failed permanently: To=%s, Subject=%s, Error=%v",
		task.To, task.Subject, err)
}

// Enqueue 邮件入队，队列满则丢弃并记录
func (p *MailPool) Enqueue(task MailTask) {
	select {
	case p.TaskQueue <- task:
	default:
		log.Printf("Mail pool queue full, dropping mail to %s", task.To)
		p.logFailedTask(task, nil)
	}
}
