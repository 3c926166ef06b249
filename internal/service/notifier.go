package service

import (
	"log"

	"softdesk/internal/model"
	"softdesk/internal/pkg"
)

// EmailNotifier 指派通知，尊重 can_be_contacted 同意位
type EmailNotifier struct {
	cfg pkg.SMTPConfig
}

func NewEmailNotifier(cfg pkg.SMTPConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

// NotifyAssignment 尽力而为，异步发送，失败只记日志
func (n *EmailNotifier) NotifyAssignment(assignee *model.User, project *model.Project, issue *model.Issue) {
	if !n.cfg.Enabled() || !assignee.CanBeContacted {
		return
	}
	to := assignee.Email
	html := pkg.AssignmentHTML(project.Title, issue.Title, issue.Priority)
	go func() {
		if err := pkg.SendEmail(n.cfg, to, "Issue assigned to you", html); err != nil {
			log.Printf("assignment mail to %s failed: %v", to, err)
		}
	}()
}
