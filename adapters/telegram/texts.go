package telegram

const (
	menuProfile     = "👤 Мой профиль"
	menuSearch      = "🔍 Поиск связей"
	menuConnections = "🤝 Мои связи"
	menuPremium     = "💎 Премиум"
	menuHelp        = "🆘 Помощь"
)

const helpText = "📚 *Справочник команд:*\n\n" +
	"👤 _Мой профиль_ - Просмотр и редактирование профиля\n" +
	"🔍 _Поиск связей_ - Найти профессионалов\n" +
	"🤝 _Мои связи_ - Ваша сеть контактов\n" +
	"💎 _Премиум_ - Расширенные возможности\n" +
	"🆘 _Помощь_ - Это справочное меню\n\n" +
	"💡 *Советы:*\n" +
	"- Заполняйте профиль максимально подробно\n" +
	"- Обновляйте информацию раз в месяц\n" +
	"- Используйте премиум для расширения возможностей\n" +
	"- Связывайтесь только с релевантными специалистами"

const premiumPitchText = "💎 *Премиум подписка*\n\n" +
	"🚀 Расширенные возможности:\n" +
	"✔️ До 200 соединений в день\n" +
	"✔️ Приоритет в поиске\n" +
	"✔️ Возможность добавлять работы\n" +
	"✔️ Специальный значок в профиле\n" +
	"✔️ Прямые ссылки в профиле\n\n" +
	"💰 Стоимость: *799₽/месяц*\n\n" +
	"👇 Нажмите кнопку ниже для оплаты:"

const premiumActivatedText = "🎉 *Премиум подписка активирована!*\n\n" +
	"Теперь вам доступны:\n" +
	"- Увеличенный лимит соединений\n" +
	"- Приоритет в поиске\n" +
	"- Возможность добавлять работы\n" +
	"- Специальный значок в профиле\n\n" +
	"Спасибо за поддержку!"

const (
	invoiceTitle       = "Премиум подписка"
	invoiceDescription = "Премиум доступ на 1 месяц"
	invoiceItemLabel   = "Премиум подписка"
	invoicePayload     = "premium_subscription"
)
