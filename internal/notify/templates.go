package notify

import (
	"fmt"
	"time"

	"github.com/gigabyte1511/blondeLawyer/internal/model"
)

// Формат даты в уведомлениях
const dateLayout = "02.01.2006 15:04"

// StatusText строит текст уведомления клиенту о смене статуса консультации.
// Для неизвестного статуса возвращает общий шаблон.
func StatusText(consultationID int64, status model.ConsultationStatus, scheduledFor time.Time, expertName string) string {
	formattedDate := ""
	if !scheduledFor.IsZero() {
		formattedDate = scheduledFor.Format(dateLayout)
	}

	switch status {
	case model.ConsultationStatusApproved:
		text := fmt.Sprintf("✅ Ваша консультация #%d подтверждена!\n\n", consultationID)
		if formattedDate != "" && expertName != "" {
			text += fmt.Sprintf("📅 Дата и время: %s\n", formattedDate)
			text += fmt.Sprintf("👩‍⚖️ Юрист: %s\n\n", expertName)
			text += "Пожалуйста, не опаздывайте на консультацию."
		}
		return text

	case model.ConsultationStatusRejected:
		return fmt.Sprintf("❌ Ваша заявка на консультацию #%d отклонена.\n\n", consultationID) +
			"Для получения дополнительной информации или записи на другое время, пожалуйста, свяжитесь с нами."

	case model.ConsultationStatusCompleted:
		return fmt.Sprintf("✓ Консультация #%d завершена.\n\n", consultationID) +
			"Благодарим вас за обращение! Если у вас остались вопросы, вы всегда можете записаться на новую консультацию."

	case model.ConsultationStatusCancelled:
		return fmt.Sprintf("🚫 Консультация #%d отменена.\n\n", consultationID) +
			"Если вы хотите записаться на новую консультацию, воспользуйтесь нашим веб-приложением."

	default:
		text := fmt.Sprintf("Статус вашей консультации #%d изменен на: %s", consultationID, status)
		if formattedDate != "" && expertName != "" {
			text += fmt.Sprintf("\n\n📅 Дата и время: %s\n", formattedDate)
			text += fmt.Sprintf("👩‍⚖️ Юрист: %s", expertName)
		}
		return text
	}
}

// StatusChangedExpertText строит текст уведомления эксперту о смене статуса
func StatusChangedExpertText(c *model.Consultation) string {
	return fmt.Sprintf(
		"🔄 Статус обращения #%d %q изменён на: %s\n\n📅 Дата и время: %s\n👤 Клиент: %s",
		c.ID,
		c.Type,
		c.Status,
		c.ScheduledFor.Format(dateLayout),
		userName(c.Customer),
	)
}

// CreatedCustomerText строит текст уведомления клиенту о созданной заявке
func CreatedCustomerText(c *model.Consultation) string {
	return fmt.Sprintf(
		"📝 Ваша заявка на консультацию #%d создана.\n\n📅 Дата и время: %s\n👩‍⚖️ Юрист: %s\n📝 Тип: %s\n\nМы сообщим вам, когда юрист подтвердит запись.",
		c.ID,
		c.ScheduledFor.Format(dateLayout),
		userName(c.Expert),
		c.Type,
	)
}

// CreatedExpertText строит текст уведомления эксперту о новой заявке
func CreatedExpertText(c *model.Consultation) string {
	return fmt.Sprintf(
		"📬 Новая заявка на консультацию #%d!\n\n📅 Дата и время: %s\n👤 Клиент: %s\n📝 Тип: %s\n\nПодтвердите или отклоните заявку в приложении.",
		c.ID,
		c.ScheduledFor.Format(dateLayout),
		userName(c.Customer),
		c.Type,
	)
}

// PreExpiredExpertText строит напоминание эксперту об истекающем сроке рассмотрения
func PreExpiredExpertText(c *model.Consultation) string {
	return fmt.Sprintf(
		"⚠️ НАПОМИНАНИЕ: Срок рассмотрения обращения #%d %q истекает и вскоре оно будет отменено автоматически!\n\n"+
			"📅 Дата и время: %s\n👤 Клиент: %s\n📝 Тип: %s\n🔄 Статус: Ожидает рассмотрения\n\n"+
			"Пожалуйста, свяжитесь с клиентом или обновите статус обращения в приложении.",
		c.ID,
		c.Type,
		c.ScheduledFor.Format(dateLayout),
		userName(c.Customer),
		c.Type,
	)
}

// PreExpiredCustomerText строит напоминание клиенту об истекающем сроке рассмотрения
func PreExpiredCustomerText(c *model.Consultation) string {
	return fmt.Sprintf(
		"⚠️ НАПОМИНАНИЕ: Срок рассмотрения вашей консультации #%d истекает!\n\n"+
			"📅 Дата и время: %s\n👩‍⚖️ Юрист: %s\n📝 Тип: %s\n🔄 Статус: %s\n\n"+
			"Если у вас остались вопросы, пожалуйста, свяжитесь с юристом или запишитесь на новую консультацию.",
		c.ID,
		c.ScheduledFor.Format(dateLayout),
		userName(c.Expert),
		c.Type,
		c.Status,
	)
}

// ExpiredExpertText строит уведомление эксперту об истёкшем сроке рассмотрения
func ExpiredExpertText(c *model.Consultation) string {
	return fmt.Sprintf(
		"⛔ ВНИМАНИЕ: Срок рассмотрения обращения #%d %q ИСТЕК!\n\n"+
			"📅 Дата и время: %s\n👤 Клиент: %s\n📝 Тип: %s\n🔄 Статус: %s\n\n"+
			"Пожалуйста, свяжитесь с клиентом для переноса консультации.",
		c.ID,
		c.Type,
		c.ScheduledFor.Format(dateLayout),
		userName(c.Customer),
		c.Type,
		c.Status,
	)
}

// ExpiredCustomerText строит уведомление клиенту об истёкшем сроке рассмотрения
func ExpiredCustomerText(c *model.Consultation) string {
	return fmt.Sprintf(
		"⛔ ВНИМАНИЕ: Срок вашей консультации #%d %q ИСТЕК!\n\n"+
			"📅 Дата и время: %s\n👩‍⚖️ Юрист: %s\n📝 Тип: %s\n🔄 Статус: %s\n\n"+
			"Если вы не успели получить консультацию, пожалуйста, свяжитесь с юристом или запишитесь на новую консультацию.",
		c.ID,
		c.Type,
		c.ScheduledFor.Format(dateLayout),
		userName(c.Expert),
		c.Type,
		c.Status,
	)
}

func userName(u *model.User) string {
	if u == nil || u.Name == "" {
		return "Неизвестно"
	}
	return u.Name
}
