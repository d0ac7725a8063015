package service

import (
	"log"
	"time"

	"github.com/calculisto/crm_server/models"
	"github.com/calculisto/crm_server/repository"
)

// 每天指定时间执行任务
func ScheduleDailyTaskAt(hour, min, sec int, task func()) {
	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, sec, 0, now.Location())
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}
			duration := next.Sub(now)
			time.Sleep(duration)
			task()
		}
	}()
}

// ProcessRenewalNotifications 处理订阅续费提醒
// 扫描已成交且带订阅的线索，订阅在noticeDays天内到期且尚未提醒过的，
// 打上提醒标记并记录提醒时间
func ProcessRenewalNotifications(noticeDays int) int {
	now := time.Now()
	log.Printf("开始执行每日订阅续费提醒检查任务..., time: %v", now)

	deadline := now.AddDate(0, 0, noticeDays)
	notified := 0

	for _, lead := range repository.Leads.All() {
		if lead.Status != models.LeadStatusWON || lead.Subscription == nil {
			continue
		}
		sub := lead.Subscription
		if sub.RenewalNotificationSent {
			continue
		}
		if sub.EndDate.Before(now) || sub.EndDate.After(deadline) {
			continue
		}

		// 复制订阅记录后整体回写，避免多个线索共享同一指针
		updated := *sub
		updated.RenewalNotificationSent = true
		notifiedAt := now
		updated.LastRenewalNotificationDate = &notifiedAt
		lead.Subscription = &updated

		if err := repository.Leads.Replace(lead); err != nil {
			log.Printf("回写续费提醒标记失败: id=%s, err=%v", lead.ID, err)
			continue
		}
		notified++
		log.Printf("已标记续费提醒: id=%s, email=%s, endDate=%v", lead.ID, lead.Email, sub.EndDate)
	}

	log.Printf("订阅续费提醒检查完成, 本次标记 %d 条", notified)
	return notified
}
