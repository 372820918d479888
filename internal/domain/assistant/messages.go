package assistant

const (
	welcomeMessage = "¡Bienvenido al Asistente Lógico de EduDigital!\n\n**Guía de uso:**\n" +
		"1. Sube un archivo (PDF, Word o TXT).\n2. Escribe \"Resumen\".\n3. Analizaré el texto localmente.\n\n" +
		"¿En qué puedo ayudarte?"
	greetingMessage   = "¡Hola! Estoy listo para procesar tus documentos."
	noDocumentMessage = "Por favor, sube un archivo antes de solicitar un resumen."
	resetMessage      = "Memoria reiniciada."
	helpMessage       = "Si deseas que analice un documento, súbelo y pídeme un \"resumen\"."
	loadedMessage     = "✅ Documento cargado: **%s**. Ya puedes solicitar el **Resumen Lógico**."
	readErrorMessage  = "❌ Error al leer el archivo."
	summaryHeader     = "**Resumen Lógico de: %s**\n\n"
	summaryBullet     = "• "
)
