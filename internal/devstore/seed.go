package devstore

import (
	"context"
	"time"

	"github.com/metalldk/storefront/pkg/storefront"
	"github.com/metalldk/storefront/pkg/types"
)

// Seed loads the demo catalog, news archive and social links.
func (s *Store) Seed(ctx context.Context) {
	for _, p := range seedProducts {
		s.AddProduct(ctx, p, true)
	}
	for _, item := range seedNews {
		s.AddNews(ctx, item)
	}
	s.SetSocial(ctx, types.SocialLinks{
		VK:       "https://vk.com/metalldk",
		Telegram: "https://t.me/metalldk",
		WhatsApp: "https://wa.me/78120000000",
	})
}

var seedProducts = []storefront.Product{
	{ID: 1, Name: "Арматура А500С", Size: "12 мм", Image: "/images/products/rebar.jpg", Price: 58900, InStock: true, TypeSlug: "armatura"},
	{ID: 2, Name: "Труба профильная", Size: "40x20x2 мм", Image: "/images/products/pipe.jpg", Price: 72400, InStock: true, TypeSlug: "truba"},
	{ID: 3, Name: "Лист горячекатаный", Size: "3 мм", Image: "/images/products/sheet.jpg", Price: 81200, InStock: true, TypeSlug: "list"},
	{ID: 4, Name: "Швеллер", Size: "10П", Image: "/images/products/channel.jpg", Price: 86750, InStock: false, TypeSlug: "shveller"},
	{ID: 5, Name: "Балка двутавровая", Size: "20Б1", Image: "/images/products/beam.jpg", Price: 91300, InStock: true, TypeSlug: "balka"},
	{ID: 6, Name: "Уголок равнополочный", Size: "50x50x5 мм", Image: "/images/products/angle.jpg", Price: 69900, InStock: true, TypeSlug: "ugolok"},
}

var seedNews = []storefront.NewsItem{
	{
		ID:          1,
		Title:       "Рост производства стали в России на 5%",
		ShortText:   "По итогам 2023 года производство стали в России выросло на 5%, достигнув рекордных показателей.",
		FullText:    "По итогам 2023 года производство стали в России выросло на 5%, достигнув рекордных показателей. Это связано с увеличением внутреннего спроса и экспорта. Крупные компании, такие как НЛМК и Severstal, внесли основной вклад в рост. Ожидается дальнейшее увеличение в 2024 году благодаря новым инвестициям в модернизацию производства.",
		PublishedAt: types.NewDate(2024, time.January, 15),
	},
	{
		ID:          2,
		Title:       "Новые инвестиции в металлургию",
		ShortText:   "Правительство России выделило дополнительные средства на развитие металлургической отрасли.",
		FullText:    "Правительство России выделило дополнительные средства на развитие металлургической отрасли. Инвестиции направлены на модернизацию оборудования и внедрение экологичных технологий. Это поможет снизить углеродный след и повысить конкурентоспособность российских металлов на мировом рынке.",
		PublishedAt: types.NewDate(2024, time.March, 20),
	},
	{
		ID:          3,
		Title:       "Увеличение экспорта металлопроката",
		ShortText:   "Экспорт металлопроката из России вырос на 10% в первом полугодии 2024 года.",
		FullText:    "Экспорт металлопроката из России вырос на 10% в первом полугодии 2024 года. Основные направления: Китай, Турция и страны ЕС. Рост обусловлен высоким спросом на российскую сталь и благоприятными ценами.",
		PublishedAt: types.NewDate(2024, time.June, 10),
	},
	{
		ID:          4,
		Title:       "Инновации в обработке металла",
		ShortText:   "Внедрение новых технологий обработки металла повышает эффективность производства.",
		FullText:    "Внедрение новых технологий обработки металла повышает эффективность производства. Компании переходят на автоматизированные линии, что снижает затраты и улучшает качество продукции. Ожидается рост производства на 7% к концу года.",
		PublishedAt: types.NewDate(2024, time.August, 5),
	},
	{
		ID:          5,
		Title:       "Снижение цен на сырье для металлургии",
		ShortText:   "Снижение цен на железную руду благоприятно сказывается на отрасли.",
		FullText:    "Снижение цен на железную руду благоприятно сказывается на отрасли. Это позволяет металлургическим компаниям снизить себестоимость продукции и увеличить прибыль. Аналитики прогнозируют стабильные цены в 2025 году.",
		PublishedAt: types.NewDate(2024, time.November, 25),
	},
	{
		ID:          6,
		Title:       "Рекордный импорт оборудования для металлургии",
		ShortText:   "Россия импортировала рекордное количество оборудования для металлургии.",
		FullText:    "Россия импортировала рекордное количество оборудования для металлургии. Это позволит модернизировать заводы и увеличить производство стали на 8% в 2025 году. Основные поставщики: Китай и Германия.",
		PublishedAt: types.NewDate(2025, time.February, 12),
	},
	{
		ID:          7,
		Title:       "Новые экологические стандарты в металлопромышленности",
		ShortText:   "Введены новые ГОСТы для снижения выбросов в металлургии.",
		FullText:    "Введены новые экологические стандарты в металлопромышленности. Компании обязаны внедрять зеленые технологии, что приведет к снижению выбросов CO2 на 15%. Это повысит конкурентоспособность на глобальном рынке.",
		PublishedAt: types.NewDate(2025, time.May, 8),
	},
	{
		ID:          8,
		Title:       "Рост спроса на арматуру в строительстве",
		ShortText:   "Спрос на арматуру вырос на 20% из-за строительного бума.",
		FullText:    "Спрос на арматуру вырос на 20% из-за строительного бума в России. Крупные проекты инфраструктуры стимулируют производство, что приводит к созданию новых рабочих мест в отрасли.",
		PublishedAt: types.NewDate(2025, time.July, 22),
	},
	{
		ID:          9,
		Title:       "Новые партнерства с Китаем в сталелитейной торговле",
		ShortText:   "Россия и Китай заключили новые соглашения о поставках стали.",
		FullText:    "Россия и Китай заключили новые соглашения о поставках стали. Это усилит экспорт и стабилизирует цены на рынке. Ожидается рост объемов торговли на 25% в ближайший год.",
		PublishedAt: types.NewDate(2025, time.September, 9),
	},
}
