package responder

import "finanzbot/internal/models"

var conversationalBank = map[models.Topic][]string{
	models.TopicGreeting: {
		"👋 ¡Hola! Soy FinanzBot, tu asistente especializado en análisis financiero empresarial. ¿En qué puedo ayudarte hoy?",
		"¡Saludos! Estoy aquí para ayudarte a entender mejor la situación financiera de tu empresa. ¿Qué te gustaría saber?",
		"Hola, soy tu asistente de análisis económico. Puedo ayudarte a interpretar tus indicadores financieros y darte recomendaciones personalizadas.",
	},
	models.TopicThanks: {
		"¡Es un placer ayudarte! El análisis financiero es mi especialidad. ¿Hay algo más que quieras saber?",
		"No hay de qué. Recuerda que puedo explicarte cualquier indicador financiero de tu empresa con más detalle.",
		"¡De nada! Si tienes más preguntas sobre la salud financiera de tu empresa, no dudes en consultarme.",
	},
	models.TopicFarewell: {
		"¡Hasta pronto! Recuerda revisar periódicamente tus indicadores financieros para mantener el control de tu empresa.",
		"Adiós. No olvides implementar las recomendaciones para mejorar la salud financiera de tu negocio. ¡Éxito!",
		"Que tengas un excelente día. Estaré aquí cuando necesites más análisis o interpretaciones de tus datos financieros.",
	},
}

var offTopicBank = map[models.OffTopicKind][]string{
	models.OffTopicHelp: {
		"Puedo analizar la salud financiera de tu empresa. Registra sus datos y pregúntame por endeudamiento, rentabilidad, productividad, rotación de cartera o liquidez.",
		"Estoy aquí para ayudarte con tus indicadores financieros. Prueba con preguntas como \"¿Cómo está mi endeudamiento?\" o \"¿Es buena mi rentabilidad?\".",
		"Mi especialidad es el análisis económico empresarial: calculo tus indicadores, los comparo con tu sector y te doy recomendaciones. ¿Por dónde quieres empezar?",
	},
	models.OffTopicEmotional: {
		"Lamento que te sientas así. No puedo ayudarte con temas personales, pero si las finanzas de tu empresa te preocupan, revisemos juntos tus indicadores.",
		"Entiendo que no es un buen momento. Si quieres, podemos enfocarnos en algo concreto: la situación financiera de tu negocio.",
		"Gracias por compartirlo. Soy un asistente financiero, así que lo mejor que puedo ofrecerte es claridad sobre los números de tu empresa.",
	},
	models.OffTopicPersonal: {
		"Ese tema está fuera de mi especialidad. Puedo ayudarte con el análisis financiero de tu empresa.",
		"Prefiero no opinar sobre eso; lo mío son los indicadores financieros. ¿Quieres saber cómo está tu rentabilidad o tu endeudamiento?",
		"Solo puedo responder preguntas sobre la salud financiera de tu empresa. ¿Te gustaría revisar algún indicador?",
	},
	models.OffTopicShort: {
		"¿Podrías darme más detalles? Puedo explicarte tu endeudamiento, rentabilidad, productividad, rotación de cartera o liquidez.",
		"No estoy seguro de entenderte. Cuéntame un poco más sobre lo que quieres saber de tu empresa.",
		"Necesito un poco más de contexto. Por ejemplo, pregúntame \"¿Cómo está mi liquidez?\".",
	},
	models.OffTopicOther: {
		"No tengo información sobre ese tema. Estoy especializado en el análisis financiero de empresas.",
		"Esa pregunta se sale de mi área. Puedo ayudarte a interpretar los indicadores económicos de tu negocio.",
		"Me temo que no puedo ayudarte con eso. Pregúntame sobre la situación financiera de tu empresa y con gusto te respondo.",
	},
}

var topicBank = map[models.Topic][]string{
	models.TopicDebt: {
		"El ratio de endeudamiento muestra qué proporción de tus activos está financiada por deuda. Un valor menor generalmente indica una situación más sólida, aunque depende del sector.",
		"Para mejorar tu ratio de endeudamiento, podrías: 1) Aumentar el capital social, 2) Reinvertir beneficios, 3) Vender activos no productivos para reducir deuda, o 4) Renegociar plazos de pago.",
		"Es importante comparar tu ratio de endeudamiento con empresas similares del sector. Cada industria tiene sus particularidades y lo que es alto en un sector puede ser normal en otro.",
	},
	models.TopicProfitability: {
		"La rentabilidad sobre activos (ROA) indica cuánto beneficio generas por cada peso invertido en activos. Un ROA más alto significa que estás aprovechando mejor tus recursos.",
		"Para mejorar tu rentabilidad podrías: 1) Aumentar precios si el mercado lo permite, 2) Reducir costos operativos, 3) Optimizar la gestión de inventarios, o 4) Deshacerte de activos poco productivos.",
		"Tu ROA debe compararse con la media del sector. Si está por debajo, podría ser momento de replantearse la estrategia de negocio o buscar nuevas oportunidades de mercado.",
	},
	models.TopicProductivity: {
		"La productividad por empleado muestra cuánto genera cada trabajador en términos de ingresos. Es un indicador clave de la eficiencia operativa.",
		"Para mejorar la productividad podrías: 1) Invertir en capacitación, 2) Mejorar procesos y tecnología, 3) Implementar sistemas de incentivos basados en resultados, o 4) Revisar la distribución de tareas.",
		"Una baja productividad puede indicar exceso de personal, falta de tecnología adecuada, o procesos ineficientes. Análisis más profundos te ayudarán a identificar los cuellos de botella.",
	},
	models.TopicReceivables: {
		"La rotación de cartera indica cuántos días tardas en cobrar tus ventas a crédito. Una rotación más baja es generalmente mejor, ya que mejora tu liquidez.",
		"Para mejorar tu rotación de cartera, considera: 1) Revisar políticas de crédito, 2) Implementar descuentos por pronto pago, 3) Mejorar el seguimiento de cobros, o 4) Evaluar factoring para cuentas problemáticas.",
		"Una cartera que rota lentamente puede generar problemas de liquidez. Es importante balancear las políticas de crédito para no perder clientes pero tampoco arriesgar tu flujo de caja.",
	},
	models.TopicLiquidity: {
		"La liquidez se refiere a la capacidad de tu empresa para cumplir con sus obligaciones a corto plazo. Con los datos proporcionados, puedo hacer una estimación básica.",
		"Un buen ratio de liquidez suele estar entre 1.5 y 2.0, indicando que puedes cubrir tus deudas a corto plazo sin problemas.",
		"Si tienes problemas de liquidez, podrías: 1) Mejorar la gestión de cobros, 2) Renegociar plazos con proveedores, 3) Establecer líneas de crédito, o 4) Revisar tu ciclo de conversión de efectivo.",
	},
	models.TopicGeneral: {
		"Basándome en los datos proporcionados, puedo analizar varios aspectos financieros de tu empresa. ¿Hay algún indicador específico que te interese conocer más a fondo?",
		"¿Sabías que el análisis financiero debe ser periódico? Te recomiendo revisar estos indicadores al menos trimestralmente para detectar tendencias y actuar a tiempo.",
		"Recuerda que cada sector tiene sus propios estándares para los indicadores financieros. Lo importante es identificar tendencias y compararte con empresas similares.",
	},
}

// explanations open the no-snapshot reply of a financial topic.
var explanations = map[models.Topic]string{
	models.TopicDebt: "📊 **Endeudamiento**\n\nEl ratio de endeudamiento divide los pasivos totales entre los activos totales. " +
		"Indica qué parte de lo que posee tu empresa se financia con recursos de terceros.",
	models.TopicProfitability: "💰 **Rentabilidad**\n\nLa rentabilidad sobre activos (ROA) divide las ganancias anuales entre los activos totales. " +
		"Mide la capacidad de tus activos para generar beneficios.",
	models.TopicProductivity: "👥 **Productividad**\n\nLa productividad por empleado divide las ganancias anuales entre el número de empleados. " +
		"Se compara con el estándar de cada sector.",
	models.TopicReceivables: "📅 **Rotación de Cartera**\n\nLa rotación de cartera estima los días que tarda tu empresa en cobrar sus cuentas por cobrar: " +
		"cartera dividida entre ganancias anuales, multiplicada por 365.",
	models.TopicLiquidity: "💧 **Liquidez**\n\nLa liquidez estimada compara tu cartera con tus deudas. " +
		"Una relación mayor que 1 indica que lo que te deben tus clientes cubre lo que debes.",
}

const registerHint = "_Para una respuesta personalizada, registra primero los datos de tu empresa._"
